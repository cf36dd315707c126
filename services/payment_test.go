package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeySecret = "test_secret"

func testGateway(env string) *PaymentGateway {
	return NewPaymentGateway(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: testKeySecret,
		Env:       env,
	})
}

func signOrder(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func paymentCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, config.DB.Model(&models.Payment{}).Count(&count).Error)
	return count
}

func TestConfirmPurchaseMockPayment(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("development")

	payment, err := gateway.ConfirmPurchase(user.ID, "", "pay_mock_123", "", decimal.NewFromInt(499), 500)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, 500, payment.CoinsAdded)
	require.NotNil(t, payment.RazorpayPaymentID)
	assert.Equal(t, "pay_mock_123", *payment.RazorpayPaymentID)

	wallet := walletBalance(t, user.ID)
	assert.Equal(t, 500, wallet.CoinBalance)
	assert.Equal(t, 500, wallet.TotalEarned)
	assertLedgerInvariant(t, wallet.ID)
}

func TestConfirmPurchaseReplayIsIdempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("development")

	first, err := gateway.ConfirmPurchase(user.ID, "", "pay_mock_replay", "", decimal.NewFromInt(99), 100)
	require.NoError(t, err)

	second, err := gateway.ConfirmPurchase(user.ID, "", "pay_mock_replay", "", decimal.NewFromInt(99), 100)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// only the first confirmation credited
	wallet := walletBalance(t, user.ID)
	assert.Equal(t, 100, wallet.CoinBalance)
	assert.EqualValues(t, 1, countTransactions(t, wallet.ID))
	assert.EqualValues(t, 1, paymentCount(t))
}

func TestConfirmPurchaseMockForbiddenInProduction(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("production")

	_, err := gateway.ConfirmPurchase(user.ID, "", "pay_mock_123", "", decimal.NewFromInt(99), 100)
	assert.ErrorIs(t, err, ErrMockPaymentForbidden)
	assert.EqualValues(t, 0, paymentCount(t))
}

func TestConfirmPurchaseVerifiesSignature(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("development")

	orderID := "order_abc123"
	paymentID := "pay_real456"

	payment, err := gateway.ConfirmPurchase(user.ID, orderID, paymentID,
		signOrder(orderID, paymentID), decimal.NewFromInt(199), 200)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, orderID, payment.RazorpayOrderID)
	assert.Equal(t, 200, walletBalance(t, user.ID).CoinBalance)
}

func TestConfirmPurchaseRejectsBadSignature(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("development")

	_, err := gateway.ConfirmPurchase(user.ID, "order_abc123", "pay_real456",
		"deadbeef", decimal.NewFromInt(199), 200)
	assert.ErrorIs(t, err, ErrSignatureVerification)

	// nothing written
	assert.EqualValues(t, 0, paymentCount(t))
	assert.Equal(t, 0, walletBalance(t, user.ID).CoinBalance)
}

func TestConfirmPurchaseReusesPendingOrder(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("development")

	orderID := "order_pending1"
	pending := models.Payment{
		UserID:          user.ID,
		Amount:          decimal.NewFromInt(299),
		Currency:        "INR",
		RazorpayOrderID: orderID,
		Status:          models.PaymentStatusPending,
	}
	require.NoError(t, config.DB.Create(&pending).Error)

	paymentID := "pay_real789"
	payment, err := gateway.ConfirmPurchase(user.ID, orderID, paymentID,
		signOrder(orderID, paymentID), decimal.NewFromInt(299), 300)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, payment.ID)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.EqualValues(t, 1, paymentCount(t))
}

func TestConfirmPurchaseValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := testGateway("development")

	_, err := gateway.ConfirmPurchase(user.ID, "order_1", "pay_1", "sig", decimal.NewFromInt(99), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = gateway.ConfirmPurchase(user.ID, "order_1", "", "sig", decimal.NewFromInt(99), 100)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)

	_, err = gateway.ConfirmPurchase(user.ID, "", "pay_real1", "", decimal.NewFromInt(99), 100)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
}

func TestCreateOrderRequiresConfiguration(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	gateway := NewPaymentGateway(RazorpayConfig{Env: "development"})

	_, err := gateway.CreateOrder(user.ID, decimal.NewFromInt(99), "INR")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)

	_, err = gateway.CreateOrder(user.ID, decimal.Zero, "INR")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// real payments need a configured gateway even on confirm
	_, err = gateway.ConfirmPurchase(user.ID, "order_1", "pay_real1", "sig", decimal.NewFromInt(99), 100)
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
}

func TestPurchaseOffer(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	offer := models.Offer{
		Title:        "Starter Pack",
		OfferType:    models.OfferTypeCoinPackage,
		Price:        decimal.NewFromInt(49),
		Currency:     "INR",
		CoinsAwarded: 50,
		IsActive:     true,
	}
	require.NoError(t, config.DB.Create(&offer).Error)

	payment, err := PurchaseOffer(user.ID, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, 50, payment.CoinsAdded)
	assert.Equal(t, 50, walletBalance(t, user.ID).CoinBalance)

	var entry models.CoinTransaction
	require.NoError(t, config.DB.First(&entry).Error)
	assert.Equal(t, models.CategoryPurchase, entry.Category)
	assert.Equal(t, "Purchased Package: Starter Pack", entry.Description)
}

func TestPurchaseOfferRejectsInactiveAndWrongType(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	inactive := models.Offer{
		Title:        "Expired Pack",
		OfferType:    models.OfferTypeCoinPackage,
		Price:        decimal.NewFromInt(49),
		Currency:     "INR",
		CoinsAwarded: 50,
		IsActive:     false,
	}
	require.NoError(t, config.DB.Create(&inactive).Error)

	discount := models.Offer{
		Title:         "Gift Discount",
		OfferType:     models.OfferTypeDiscount,
		Price:         decimal.NewFromInt(19),
		Currency:      "INR",
		DiscountCoins: 5,
		IsActive:      true,
	}
	require.NoError(t, config.DB.Create(&discount).Error)

	_, err := PurchaseOffer(user.ID, inactive.ID)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	_, err = PurchaseOffer(user.ID, discount.ID)
	assert.ErrorIs(t, err, ErrNotCoinPackage)

	_, err = PurchaseOffer(user.ID, 9999)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	assert.Equal(t, 0, walletBalance(t, user.ID).CoinBalance)
}

func TestListActiveOffersFiltersWindow(t *testing.T) {
	setupTestDB(t)

	hourAgo := time.Now().Add(-2 * time.Hour)
	justNow := time.Now().Add(-time.Minute)
	tomorrow := time.Now().Add(24 * time.Hour)
	past, recent, future := &hourAgo, &justNow, &tomorrow

	offers := []models.Offer{
		{Title: "Live", OfferType: models.OfferTypeCoinPackage, Price: decimal.NewFromInt(49), Currency: "INR", CoinsAwarded: 50, IsActive: true, StartTime: recent, EndTime: future},
		{Title: "Unbounded", OfferType: models.OfferTypeCoinPackage, Price: decimal.NewFromInt(99), Currency: "INR", CoinsAwarded: 120, IsActive: true},
		{Title: "Expired", OfferType: models.OfferTypeCoinPackage, Price: decimal.NewFromInt(49), Currency: "INR", CoinsAwarded: 50, IsActive: true, StartTime: past, EndTime: recent},
		{Title: "Disabled", OfferType: models.OfferTypeCoinPackage, Price: decimal.NewFromInt(49), Currency: "INR", CoinsAwarded: 50, IsActive: false},
	}
	require.NoError(t, config.DB.Create(&offers).Error)

	active, err := ListActiveOffers()
	require.NoError(t, err)
	require.Len(t, active, 2)
	titles := []string{active[0].Title, active[1].Title}
	assert.ElementsMatch(t, []string{"Live", "Unbounded"}, titles)
}
