package services

import (
	"testing"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGiftsSeedsCatalog(t *testing.T) {
	setupTestDB(t)

	gifts, err := ListGifts()
	require.NoError(t, err)
	require.Len(t, gifts, 6)
	assert.Equal(t, "Rose", gifts[0].Name)
	assert.Equal(t, 10, gifts[0].Cost)
	assert.Equal(t, "Car", gifts[5].Name)
	assert.Equal(t, 5000, gifts[5].Cost)

	// second call reads the seeded rows instead of reseeding
	again, err := ListGifts()
	require.NoError(t, err)
	require.Len(t, again, 6)
	assert.Equal(t, gifts[0].ID, again[0].ID)
}

func TestSendGiftMovesFullCost(t *testing.T) {
	setupTestDB(t)
	sender := createTestUser(t, "alice")
	receiver := createTestUser(t, "bob")
	seedWallet(t, sender.ID, 100)

	gifts, err := ListGifts()
	require.NoError(t, err)
	rose := gifts[0]

	senderWallet, giftTxn, err := SendGift(sender.ID, receiver.ID, rose.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, senderWallet.CoinBalance)
	assert.Equal(t, 10, senderWallet.TotalSpent)
	assert.Equal(t, rose.ID, giftTxn.GiftID)

	receiverWallet := walletBalance(t, receiver.ID)
	assert.Equal(t, 10, receiverWallet.CoinBalance)
	assert.Equal(t, 10, receiverWallet.TotalEarned)

	assert.EqualValues(t, 1, countTransactions(t, senderWallet.ID))
	assert.EqualValues(t, 1, countTransactions(t, receiverWallet.ID))

	var giftCount int64
	require.NoError(t, config.DB.Model(&models.GiftTransaction{}).Count(&giftCount).Error)
	assert.EqualValues(t, 1, giftCount)

	assertLedgerInvariant(t, senderWallet.ID)
	assertLedgerInvariant(t, receiverWallet.ID)
}

func TestSendGiftInsufficientFunds(t *testing.T) {
	setupTestDB(t)
	sender := createTestUser(t, "alice")
	receiver := createTestUser(t, "bob")
	seedWallet(t, sender.ID, 5)

	gifts, err := ListGifts()
	require.NoError(t, err)

	_, _, err = SendGift(sender.ID, receiver.ID, gifts[0].ID)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, 5, walletBalance(t, sender.ID).CoinBalance)
	assert.Equal(t, 0, walletBalance(t, receiver.ID).CoinBalance)

	var giftCount int64
	require.NoError(t, config.DB.Model(&models.GiftTransaction{}).Count(&giftCount).Error)
	assert.EqualValues(t, 0, giftCount)
}

func TestSendGiftUnknownGiftOrReceiver(t *testing.T) {
	setupTestDB(t)
	sender := createTestUser(t, "alice")
	receiver := createTestUser(t, "bob")
	seedWallet(t, sender.ID, 100)

	_, _, err := SendGift(sender.ID, receiver.ID, 4242)
	assert.ErrorIs(t, err, ErrGiftNotFound)

	gifts, err := ListGifts()
	require.NoError(t, err)
	_, _, err = SendGift(sender.ID, 9999, gifts[0].ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Equal(t, 100, walletBalance(t, sender.ID).CoinBalance)
}
