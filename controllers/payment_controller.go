package controllers

import (
	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var paymentGateway *services.PaymentGateway

// InitPaymentGateway installs the gateway used by the payment endpoints.
// Called once from main with explicit configuration.
func InitPaymentGateway(gateway *services.PaymentGateway) {
	paymentGateway = gateway
}

// CreateCoinOrder registers a Razorpay order for a coin purchase
func CreateCoinOrder(c *gin.Context) {
	utils.LogInfo("CreateCoinOrder called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount   decimal.Decimal `json:"amount" binding:"required"`
		Currency string          `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required", err.Error())
		return
	}

	order, err := paymentGateway.CreateOrder(user.ID, req.Amount, req.Currency)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("Created Razorpay order %s for user ID: %d", order.OrderID, user.ID)

	utils.Success(c, "Order created successfully", gin.H{
		"order_id": order.OrderID,
		"key_id":   order.KeyID,
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// VerifyCoinPurchase verifies the payment signature and credits coins
func VerifyCoinPurchase(c *gin.Context) {
	utils.LogInfo("VerifyCoinPurchase called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount            decimal.Decimal `json:"amount" binding:"required"`
		Coins             int             `json:"coins" binding:"required"`
		RazorpayOrderID   string          `json:"razorpay_order_id"`
		RazorpayPaymentID string          `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string          `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount, coins and payment id are required", err.Error())
		return
	}
	utils.LogDebug("Verifying payment - Order ID: %s, Payment ID: %s", req.RazorpayOrderID, req.RazorpayPaymentID)

	payment, err := paymentGateway.ConfirmPurchase(user.ID, req.RazorpayOrderID, req.RazorpayPaymentID,
		req.RazorpaySignature, req.Amount, req.Coins)
	if err != nil {
		utils.LogError("Payment confirmation failed for user ID: %d, payment ID: %s: %v",
			user.ID, req.RazorpayPaymentID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("Payment %s settled for user ID: %d, coins added: %d", req.RazorpayPaymentID, user.ID, payment.CoinsAdded)

	utils.Success(c, "Payment verified and coins added", gin.H{
		"payment_id":  payment.ID,
		"coins_added": payment.CoinsAdded,
		"status":      payment.Status,
	})
}
