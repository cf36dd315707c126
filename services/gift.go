package services

import (
	"errors"
	"fmt"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"gorm.io/gorm"
)

var defaultGifts = []models.Gift{
	{Name: "Rose", Icon: "🌹", Cost: 10},
	{Name: "Heart", Icon: "❤️", Cost: 50},
	{Name: "Chocolate", Icon: "🍫", Cost: 100},
	{Name: "Diamond", Icon: "💎", Cost: 500},
	{Name: "Crown", Icon: "👑", Cost: 1000},
	{Name: "Car", Icon: "🏎️", Cost: 5000},
}

// ListGifts returns the gift catalog, seeding the defaults when it is empty.
func ListGifts() ([]models.Gift, error) {
	var gifts []models.Gift
	if err := config.DB.Order("cost ASC").Find(&gifts).Error; err != nil {
		return nil, err
	}
	if len(gifts) > 0 {
		return gifts, nil
	}

	seed := make([]models.Gift, len(defaultGifts))
	copy(seed, defaultGifts)
	if err := config.DB.Create(&seed).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Order("cost ASC").Find(&gifts).Error; err != nil {
		return nil, err
	}
	return gifts, nil
}

// SendGift charges the sender the gift's cost and credits the receiver the
// full cost. Both ledger legs and the gift record commit together; an
// overdraft on the sender aborts everything.
func SendGift(senderID, receiverID, giftID uint) (*models.Wallet, *models.GiftTransaction, error) {
	var gift models.Gift
	if err := config.DB.First(&gift, giftID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGiftNotFound
		}
		return nil, nil, err
	}

	var sender, receiver models.User
	if err := config.DB.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if err := config.DB.First(&sender, senderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	senderWallet, err := GetOrCreateWallet(senderID)
	if err != nil {
		return nil, nil, err
	}
	receiverWallet, err := GetOrCreateWallet(receiverID)
	if err != nil {
		return nil, nil, err
	}

	// Receiver gets 100% of the gift cost
	receiverAmount := gift.Cost

	giftTxn := models.GiftTransaction{
		SenderID:   senderID,
		ReceiverID: receiverID,
		GiftID:     gift.ID,
	}

	legs := []ledgerLeg{
		{
			walletID:    senderWallet.ID,
			amount:      gift.Cost,
			txnType:     models.TransactionTypeDebit,
			category:    models.CategoryGiftSent,
			description: fmt.Sprintf("Sent %s to %s", gift.Name, receiver.Username),
		},
		{
			walletID:    receiverWallet.ID,
			amount:      receiverAmount,
			txnType:     models.TransactionTypeCredit,
			category:    models.CategoryGiftReceived,
			description: fmt.Sprintf("Received %s from %s", gift.Name, sender.Username),
		},
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, leg := range sortedLegs(legs) {
			if _, err := applyDelta(tx, leg.walletID, leg.amount, leg.txnType, leg.category, leg.description); err != nil {
				return err
			}
		}
		return tx.Create(&giftTxn).Error
	})
	if err != nil {
		return nil, nil, err
	}

	updated, err := GetOrCreateWallet(senderID)
	if err != nil {
		return nil, nil, err
	}
	publishLedgerEvent(updated, models.TransactionTypeDebit, models.CategoryGiftSent, gift.Cost, gift.Name)
	return updated, &giftTxn, nil
}
