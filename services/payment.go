package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"github.com/vibely-app/vibely-backend/utils"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MockPaymentPrefix marks payment ids from the frontend testing tool. Mock
// payments skip signature verification and are rejected outright in
// production.
const MockPaymentPrefix = "pay_mock_"

// RazorpayConfig carries the gateway credentials. Injected at construction so
// nothing in the payment path reads process environment at call time.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Env       string
}

// PaymentGateway verifies externally-asserted payment completion and credits
// coins. All credits go through the ledger inside one transaction, and a
// given Razorpay payment id settles at most once.
type PaymentGateway struct {
	cfg    RazorpayConfig
	client *razorpay.Client
}

// NewPaymentGateway builds a gateway from explicit configuration.
func NewPaymentGateway(cfg RazorpayConfig) *PaymentGateway {
	gateway := &PaymentGateway{cfg: cfg}
	if cfg.KeyID != "" && cfg.KeySecret != "" {
		gateway.client = razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	}
	return gateway
}

func (g *PaymentGateway) configured() bool {
	return g.client != nil
}

// Order is the handle returned to the client for checkout.
type Order struct {
	OrderID string          `json:"order_id"`
	KeyID   string          `json:"key_id"`
	Payment *models.Payment `json:"-"`
}

// CreateOrder registers a payment intent with Razorpay and records a pending
// Payment row. No local state is written when the processor call fails.
func (g *PaymentGateway) CreateOrder(userID uint, amount decimal.Decimal, currency string) (*Order, error) {
	if amount.Cmp(decimal.Zero) <= 0 {
		return nil, ErrInvalidAmount
	}
	if !g.configured() {
		return nil, ErrGatewayNotConfigured
	}
	if currency == "" {
		currency = "INR"
	}

	// Razorpay expects the amount in paise
	orderData := map[string]interface{}{
		"amount":          amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency":        currency,
		"receipt":         fmt.Sprintf("coin_topup_%d_%s", userID, time.Now().Format("20060102150405")),
		"payment_capture": 1,
	}
	rzOrder, err := g.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	orderID := fmt.Sprintf("%v", rzOrder["id"])

	payment := models.Payment{
		UserID:          userID,
		Amount:          amount,
		Currency:        currency,
		RazorpayOrderID: orderID,
		Status:          models.PaymentStatusPending,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	return &Order{OrderID: orderID, KeyID: g.cfg.KeyID, Payment: &payment}, nil
}

// verifySignature recomputes the Razorpay checkout signature:
// hex(HMAC-SHA256(secret, orderID|paymentID)).
func (g *PaymentGateway) verifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func findCompletedPayment(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := config.DB.Where("razorpay_payment_id = ? AND status = ?", paymentID, models.PaymentStatusCompleted).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ConfirmPurchase settles an external payment and credits coins. Idempotent
// per payment id: a replay of an already-settled payment returns the prior
// record without crediting again.
func (g *PaymentGateway) ConfirmPurchase(userID uint, orderID, paymentID, signature string, amount decimal.Decimal, coins int) (*models.Payment, error) {
	if coins <= 0 || amount.Cmp(decimal.Zero) <= 0 {
		return nil, ErrInvalidAmount
	}
	if paymentID == "" {
		return nil, ErrPaymentIncomplete
	}

	if existing, err := findCompletedPayment(paymentID); err != nil {
		return nil, err
	} else if existing != nil {
		utils.LogInfo("Payment %s already settled, skipping credit", paymentID)
		return existing, nil
	}

	if strings.HasPrefix(paymentID, MockPaymentPrefix) {
		if strings.EqualFold(g.cfg.Env, "production") {
			return nil, ErrMockPaymentForbidden
		}
	} else {
		if !g.configured() {
			return nil, ErrGatewayNotConfigured
		}
		if orderID == "" || signature == "" {
			return nil, ErrPaymentIncomplete
		}
		if !g.verifySignature(orderID, paymentID, signature) {
			return nil, ErrSignatureVerification
		}
	}

	if orderID == "" {
		orderID = fmt.Sprintf("ORDER_%d_%d", userID, coins)
	}

	externalID := paymentID
	var payment models.Payment
	var wallet *models.Wallet
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Reuse the pending record written by CreateOrder when there is one
		err := tx.Where("razorpay_order_id = ? AND user_id = ? AND status = ?",
			orderID, userID, models.PaymentStatusPending).First(&payment).Error
		switch {
		case err == nil:
			payment.RazorpayPaymentID = &externalID
			payment.RazorpaySignature = signature
			payment.Status = models.PaymentStatusCompleted
			payment.Amount = amount
			payment.CoinsAdded = coins
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			payment = models.Payment{
				UserID:            userID,
				Amount:            amount,
				Currency:          "INR",
				RazorpayOrderID:   orderID,
				RazorpayPaymentID: &externalID,
				RazorpaySignature: signature,
				Status:            models.PaymentStatusCompleted,
				CoinsAdded:        coins,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		default:
			return err
		}

		w, err := getOrCreateWallet(tx, userID)
		if err != nil {
			return err
		}
		w, err = applyDelta(tx, w.ID, coins, models.TransactionTypeCredit, models.CategoryPurchase,
			fmt.Sprintf("Purchase via %s", paymentID))
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		// A concurrent confirm for the same payment id commits first and the
		// unique index rolls this one back; hand back the winner's record.
		if existing, findErr := findCompletedPayment(paymentID); findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	publishLedgerEvent(wallet, models.TransactionTypeCredit, models.CategoryPurchase, coins, payment.RazorpayOrderID)
	return &payment, nil
}
