package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one external payment attempt. Completed is terminal; a
// completed payment never transitions out, and each Razorpay payment id
// settles at most once (unique index).
type Payment struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `json:"user_id" gorm:"index"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`
	Currency          string          `json:"currency" gorm:"default:INR"`
	RazorpayOrderID   string          `json:"razorpay_order_id"`
	RazorpayPaymentID *string         `json:"razorpay_payment_id" gorm:"uniqueIndex"`
	RazorpaySignature string          `json:"-"`
	Status            string          `json:"status" gorm:"default:pending"` // pending, completed, failed
	CoinsAdded        int             `json:"coins_added" gorm:"default:0"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PaymentStatus constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Withdrawal is a request to cash coins out. Coins are debited when the
// request is created; an admin later approves or rejects it.
type Withdrawal struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `json:"user_id" gorm:"index"`
	Amount            int       `json:"amount"`
	AccountNumber     string    `json:"account_number"`
	IFSCCode          string    `json:"ifsc_code"`
	AccountHolderName string    `json:"account_holder_name"`
	Status            string    `json:"status" gorm:"default:pending"` // pending, approved, rejected
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
