package services

import (
	"sync"
	"testing"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateWalletIdempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	first, err := GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.CoinBalance)

	second, err := GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSpendEarnTransferScenario(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	other := createTestUser(t, "bob")
	seedWallet(t, user.ID, 100)

	wallet, err := Spend(user.ID, 30, "test")
	require.NoError(t, err)
	assert.Equal(t, 70, wallet.CoinBalance)
	assert.Equal(t, 30, wallet.TotalSpent)

	wallet, err = Earn(user.ID, 10, "bonus")
	require.NoError(t, err)
	assert.Equal(t, 80, wallet.CoinBalance)
	assert.Equal(t, 10, wallet.TotalEarned)

	wallet, err = Transfer(user.ID, other.ID, 20, "Transfer")
	require.NoError(t, err)
	assert.Equal(t, 60, wallet.CoinBalance)

	receiver := walletBalance(t, other.ID)
	assert.Equal(t, 20, receiver.CoinBalance)
	assert.Equal(t, 20, receiver.TotalEarned)
	assertLedgerInvariant(t, receiver.ID)
}

func TestSpendInsufficientFunds(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	wallet := seedWallet(t, user.ID, 50)

	_, err := Spend(user.ID, 51, "too much")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// rejected in full: no ledger row, balance untouched
	assert.EqualValues(t, 0, countTransactions(t, wallet.ID))
	assert.Equal(t, 50, walletBalance(t, user.ID).CoinBalance)
}

func TestSpendInvalidAmount(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	seedWallet(t, user.ID, 50)

	for _, amount := range []int{0, -5} {
		_, err := Spend(user.ID, amount, "bad")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	_, err := Earn(user.ID, 0, "bad")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = Refund(user.ID, -1, "bad")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRefundDoesNotCountAsEarned(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	wallet, err := Refund(user.ID, 25, "order cancelled")
	require.NoError(t, err)
	assert.Equal(t, 25, wallet.CoinBalance)
	assert.Equal(t, 0, wallet.TotalEarned)

	var entry models.CoinTransaction
	require.NoError(t, config.DB.Where("wallet_id = ?", wallet.ID).First(&entry).Error)
	assert.Equal(t, models.CategoryRefund, entry.Category)
	assertLedgerInvariant(t, wallet.ID)
}

func TestTransferInsufficientFundsLeavesReceiverUntouched(t *testing.T) {
	setupTestDB(t)
	sender := createTestUser(t, "alice")
	receiver := createTestUser(t, "bob")
	seedWallet(t, sender.ID, 10)

	_, err := Transfer(sender.ID, receiver.ID, 20, "Transfer")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, 10, walletBalance(t, sender.ID).CoinBalance)
	assert.Equal(t, 0, walletBalance(t, receiver.ID).CoinBalance)

	var count int64
	require.NoError(t, config.DB.Model(&models.CoinTransaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTransferToUnknownUser(t *testing.T) {
	setupTestDB(t)
	sender := createTestUser(t, "alice")
	seedWallet(t, sender.ID, 100)

	_, err := Transfer(sender.ID, 9999, 20, "Transfer")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 100, walletBalance(t, sender.ID).CoinBalance)
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	wallet := seedWallet(t, user.ID, 100)

	const workers = 10
	const debit = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Spend(user.ID, debit, "parallel spend")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrInsufficientFunds):
			rejected++
		}
	}

	// exactly enough debits succeed to exhaust the balance
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, rejected)
	assert.Equal(t, 0, walletBalance(t, user.ID).CoinBalance)
	assert.EqualValues(t, 5, countTransactions(t, wallet.ID))
	assertLedgerInvariant(t, wallet.ID)
}

func TestRequestWithdrawal(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	wallet := seedWallet(t, user.ID, 500)

	withdrawal, err := RequestWithdrawal(user.ID, 200, "12345678", "HDFC0001", "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, withdrawal.Status)
	assert.Equal(t, 300, walletBalance(t, user.ID).CoinBalance)

	var entry models.CoinTransaction
	require.NoError(t, config.DB.Where("wallet_id = ?", wallet.ID).First(&entry).Error)
	assert.Equal(t, models.CategoryWithdrawal, entry.Category)
	assert.Equal(t, models.TransactionTypeDebit, entry.Type)

	_, err = RequestWithdrawal(user.ID, 1000, "12345678", "HDFC0001", "Alice")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var pending int64
	require.NoError(t, config.DB.Model(&models.Withdrawal{}).Count(&pending).Error)
	assert.EqualValues(t, 1, pending)
}

func TestListTransactionsMostRecentFirst(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	for i := 1; i <= 3; i++ {
		_, err := Earn(user.ID, i*10, "drip")
		require.NoError(t, err)
	}

	transactions, total, err := ListTransactions(user.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, transactions, 2)
	assert.Equal(t, 30, transactions[0].Amount)
	assert.Equal(t, 20, transactions[1].Amount)
}

func TestHasPurchased(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	purchased, err := HasPurchased(user.ID)
	require.NoError(t, err)
	assert.False(t, purchased)

	wallet := walletBalance(t, user.ID)
	_, err = ApplyDelta(wallet.ID, 50, models.TransactionTypeCredit, models.CategoryPurchase, "Purchase via pay_test")
	require.NoError(t, err)

	purchased, err = HasPurchased(user.ID)
	require.NoError(t, err)
	assert.True(t, purchased)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []LedgerEvent
}

func (r *recordingPublisher) Publish(event LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func TestLedgerEventsPublishedAfterCommit(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	recorder := &recordingPublisher{}
	SetEventPublisher(recorder)
	t.Cleanup(func() { SetEventPublisher(nil) })

	_, err := Earn(user.ID, 40, "bonus")
	require.NoError(t, err)

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.Equal(t, user.ID, event.UserID)
	assert.Equal(t, models.CategoryEarned, event.Category)
	assert.Equal(t, 40, event.Amount)
	assert.Equal(t, 40, event.Balance)
}
