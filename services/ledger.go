package services

import (
	"errors"
	"fmt"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"gorm.io/gorm"
)

// GetOrCreateWallet retrieves or creates the wallet for a user. Idempotent.
func GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	return getOrCreateWallet(config.DB, userID)
}

func getOrCreateWallet(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.Where("user_id = ?", userID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = models.Wallet{UserID: userID}
	if createErr := db.Create(&wallet).Error; createErr != nil {
		// A concurrent request may have created the wallet first; the unique
		// index on user_id rejects the second insert.
		if err := db.Where("user_id = ?", userID).First(&wallet).Error; err == nil {
			return &wallet, nil
		}
		return nil, createErr
	}
	return &wallet, nil
}

// applyDelta atomically adjusts a wallet balance and appends the matching
// ledger entry. Debits are guarded with `coin_balance >= amount` in the UPDATE
// itself, so concurrent debits can never drive the balance negative; when the
// guard rejects the update nothing is written at all. Credits bump
// total_earned except for refunds, debits bump total_spent. Must run inside a
// transaction so the balance update and the entry insert commit together.
func applyDelta(tx *gorm.DB, walletID uint, amount int, txnType, category, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	updates := map[string]interface{}{}
	query := tx.Model(&models.Wallet{}).Where("id = ?", walletID)

	switch txnType {
	case models.TransactionTypeDebit:
		query = query.Where("coin_balance >= ?", amount)
		updates["coin_balance"] = gorm.Expr("coin_balance - ?", amount)
		updates["total_spent"] = gorm.Expr("total_spent + ?", amount)
	case models.TransactionTypeCredit:
		updates["coin_balance"] = gorm.Expr("coin_balance + ?", amount)
		// Refunds restore the balance without counting as newly earned
		if category != models.CategoryRefund {
			updates["total_earned"] = gorm.Expr("total_earned + ?", amount)
		}
	default:
		return nil, fmt.Errorf("unknown transaction type %q", txnType)
	}

	res := query.Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if txnType == models.TransactionTypeDebit {
			var count int64
			if err := tx.Model(&models.Wallet{}).Where("id = ?", walletID).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrInsufficientFunds
			}
		}
		return nil, ErrWalletNotFound
	}

	entry := models.CoinTransaction{
		WalletID:    walletID,
		Type:        txnType,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := tx.First(&wallet, walletID).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// ApplyDelta runs a single balance mutation in its own transaction and
// publishes the resulting ledger event after commit.
func ApplyDelta(walletID uint, amount int, txnType, category, description string) (*models.Wallet, error) {
	var wallet *models.Wallet
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		w, err := applyDelta(tx, walletID, amount, txnType, category, description)
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishLedgerEvent(wallet, txnType, category, amount, description)
	return wallet, nil
}
