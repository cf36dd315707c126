package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's coin balance. One wallet per user, created lazily on
// first reference. TotalEarned and TotalSpent only ever grow.
type Wallet struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"uniqueIndex"`
	CoinBalance int            `json:"coin_balance" gorm:"default:0"`
	TotalEarned int            `json:"total_earned" gorm:"default:0"`
	TotalSpent  int            `json:"total_spent" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CoinTransaction is one append-only ledger entry for a wallet. Rows are never
// updated or deleted; per wallet, sum(credits) - sum(debits) == CoinBalance.
type CoinTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WalletID    uint      `json:"wallet_id" gorm:"index"`
	Wallet      Wallet    `json:"-" gorm:"foreignKey:WalletID"`
	Type        string    `json:"type"`     // credit, debit
	Category    string    `json:"category"` // purchase, spent, earned, ...
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionType constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// TransactionCategory constants
const (
	CategoryPurchase         = "purchase"
	CategorySpent            = "spent"
	CategoryEarned           = "earned"
	CategoryWithdrawal       = "withdrawal"
	CategoryGiftSent         = "gift_sent"
	CategoryGiftReceived     = "gift_received"
	CategoryTransferSent     = "transfer_sent"
	CategoryTransferReceived = "transfer_received"
	CategoryRefund           = "refund"
)
