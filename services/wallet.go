package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"gorm.io/gorm"
)

// GetWallet returns the user's wallet snapshot, creating it on first use.
func GetWallet(userID uint) (*models.Wallet, error) {
	return GetOrCreateWallet(userID)
}

// Spend debits coins from the user's wallet. Fails with ErrInsufficientFunds
// when the balance is too low; nothing is written in that case.
func Spend(userID uint, amount int, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	wallet, err := GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	return ApplyDelta(wallet.ID, amount, models.TransactionTypeDebit, models.CategorySpent, description)
}

// Earn credits coins to the user's wallet and counts them as earned.
func Earn(userID uint, amount int, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	wallet, err := GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	return ApplyDelta(wallet.ID, amount, models.TransactionTypeCredit, models.CategoryEarned, description)
}

// Refund credits coins back without touching total_earned, so reporting can
// tell refunded coins apart from newly earned ones.
func Refund(userID uint, amount int, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	wallet, err := GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	return ApplyDelta(wallet.ID, amount, models.TransactionTypeCredit, models.CategoryRefund, description)
}

type ledgerLeg struct {
	walletID    uint
	amount      int
	txnType     string
	category    string
	description string
}

// sortedLegs orders legs by ascending wallet ID so concurrent
// opposite-direction transfers cannot deadlock on row locks.
func sortedLegs(legs []ledgerLeg) []ledgerLeg {
	sorted := make([]ledgerLeg, len(legs))
	copy(sorted, legs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].walletID < sorted[j].walletID })
	return sorted
}

// applyLegs runs a multi-wallet mutation as one transaction.
func applyLegs(legs []ledgerLeg) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		for _, leg := range sortedLegs(legs) {
			if _, err := applyDelta(tx, leg.walletID, leg.amount, leg.txnType, leg.category, leg.description); err != nil {
				return err
			}
		}
		return nil
	})
}

// Transfer moves coins between two users. The sender debit and receiver
// credit commit together or not at all; an overdraft aborts the whole
// operation before the receiver is touched.
func Transfer(senderID, receiverID uint, amount int, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var sender, receiver models.User
	if err := config.DB.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := config.DB.First(&sender, senderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	senderWallet, err := GetOrCreateWallet(senderID)
	if err != nil {
		return nil, err
	}
	receiverWallet, err := GetOrCreateWallet(receiverID)
	if err != nil {
		return nil, err
	}

	err = applyLegs([]ledgerLeg{
		{
			walletID:    senderWallet.ID,
			amount:      amount,
			txnType:     models.TransactionTypeDebit,
			category:    models.CategoryTransferSent,
			description: fmt.Sprintf("%s to %s", description, receiver.Username),
		},
		{
			walletID:    receiverWallet.ID,
			amount:      amount,
			txnType:     models.TransactionTypeCredit,
			category:    models.CategoryTransferReceived,
			description: fmt.Sprintf("%s from %s", description, sender.Username),
		},
	})
	if err != nil {
		return nil, err
	}

	updated, err := GetOrCreateWallet(senderID)
	if err != nil {
		return nil, err
	}
	publishLedgerEvent(updated, models.TransactionTypeDebit, models.CategoryTransferSent, amount, description)
	return updated, nil
}

// RequestWithdrawal debits coins and files a pending withdrawal request in
// one transaction. The coins leave the balance immediately; an admin later
// approves or rejects the payout.
func RequestWithdrawal(userID uint, amount int, accountNumber, ifscCode, holderName string) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	wallet, err := GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}

	withdrawal := models.Withdrawal{
		UserID:            userID,
		Amount:            amount,
		AccountNumber:     accountNumber,
		IFSCCode:          ifscCode,
		AccountHolderName: holderName,
		Status:            models.PaymentStatusPending,
	}

	var updated *models.Wallet
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		w, err := applyDelta(tx, wallet.ID, amount, models.TransactionTypeDebit, models.CategoryWithdrawal,
			fmt.Sprintf("Withdrawal request for %d coins", amount))
		if err != nil {
			return err
		}
		updated = w
		return tx.Create(&withdrawal).Error
	})
	if err != nil {
		return nil, err
	}
	publishLedgerEvent(updated, models.TransactionTypeDebit, models.CategoryWithdrawal, amount, withdrawal.AccountHolderName)
	return &withdrawal, nil
}

// ListTransactions returns the most recent ledger entries for a user.
func ListTransactions(userID uint, limit, offset int) ([]models.CoinTransaction, int64, error) {
	wallet, err := GetOrCreateWallet(userID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := config.DB.Model(&models.CoinTransaction{}).Where("wallet_id = ?", wallet.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.CoinTransaction
	if err := config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// HasPurchased reports whether the user has ever completed a coin purchase.
func HasPurchased(userID uint) (bool, error) {
	wallet, err := GetOrCreateWallet(userID)
	if err != nil {
		return false, err
	}
	var count int64
	err = config.DB.Model(&models.CoinTransaction{}).
		Where("wallet_id = ? AND category = ?", wallet.ID, models.CategoryPurchase).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
