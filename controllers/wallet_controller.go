package controllers

import (
	"fmt"

	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
	"github.com/gin-gonic/gin"
)

// GetWalletBalance returns the user's coin balance and lifetime counters
func GetWalletBalance(c *gin.Context) {
	utils.LogInfo("GetWalletBalance called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet balance request for user ID: %d", user.ID)

	wallet, err := services.GetWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Wallet balance retrieved successfully", gin.H{
		"coin_balance": wallet.CoinBalance,
		"total_earned": wallet.TotalEarned,
		"total_spent":  wallet.TotalSpent,
	})
}

// GetWalletTransactions returns the user's ledger entries, most recent first
func GetWalletTransactions(c *gin.Context) {
	utils.LogInfo("GetWalletTransactions called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet transactions request for user ID: %d", user.ID)

	pagination := utils.NewPagination(c)
	if pagination.Limit > 50 {
		pagination.Limit = 50
		pagination.Offset = (pagination.Page - 1) * pagination.Limit
	}

	transactions, total, err := services.ListTransactions(user.ID, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to get transactions for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("Successfully retrieved %d transactions for user ID: %d", len(transactions), user.ID)

	formatted := make([]gin.H, len(transactions))
	for i, txn := range transactions {
		formatted[i] = gin.H{
			"id":          txn.ID,
			"type":        txn.Type,
			"category":    txn.Category,
			"amount":      txn.Amount,
			"description": txn.Description,
			"created_at":  txn.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	utils.SuccessWithPagination(c, "Wallet transactions retrieved successfully", gin.H{
		"transactions": formatted,
	}, total, pagination.Page, pagination.Limit)
}

// SpendCoins debits coins from the user's wallet
func SpendCoins(c *gin.Context) {
	utils.LogInfo("SpendCoins called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount      int    `json:"amount" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required", err.Error())
		return
	}
	if req.Description == "" {
		req.Description = "Spent"
	}

	wallet, err := services.Spend(user.ID, req.Amount, req.Description)
	if err != nil {
		utils.LogError("Spend failed for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d spent %d coins", user.ID, req.Amount)

	utils.Success(c, "Coins spent successfully", gin.H{"new_balance": wallet.CoinBalance})
}

// EarnCoins credits coins to the user's wallet
func EarnCoins(c *gin.Context) {
	utils.LogInfo("EarnCoins called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount      int    `json:"amount" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required", err.Error())
		return
	}
	if req.Description == "" {
		req.Description = "Earned"
	}

	wallet, err := services.Earn(user.ID, req.Amount, req.Description)
	if err != nil {
		utils.LogError("Earn failed for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d earned %d coins", user.ID, req.Amount)

	utils.Success(c, "Coins credited successfully", gin.H{"new_balance": wallet.CoinBalance})
}

// RefundCoins credits coins back without counting them as earned
func RefundCoins(c *gin.Context) {
	utils.LogInfo("RefundCoins called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount      int    `json:"amount" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required", err.Error())
		return
	}
	if req.Description == "" {
		req.Description = "Refund"
	}

	wallet, err := services.Refund(user.ID, req.Amount, req.Description)
	if err != nil {
		utils.LogError("Refund failed for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d refunded %d coins", user.ID, req.Amount)

	utils.Success(c, "Coins refunded successfully", gin.H{"new_balance": wallet.CoinBalance})
}

// TransferCoins moves coins from the user to another user
func TransferCoins(c *gin.Context) {
	utils.LogInfo("TransferCoins called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount      int    `json:"amount" binding:"required"`
		ReceiverID  uint   `json:"receiver_id" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount and receiver_id are required", err.Error())
		return
	}
	if req.Description == "" {
		req.Description = "Transfer"
	}

	wallet, err := services.Transfer(user.ID, req.ReceiverID, req.Amount, req.Description)
	if err != nil {
		utils.LogError("Transfer failed from user ID: %d to user ID: %d: %v", user.ID, req.ReceiverID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d transferred %d coins to user %d", user.ID, req.Amount, req.ReceiverID)

	utils.Success(c, "Coins transferred successfully", gin.H{"new_balance": wallet.CoinBalance})
}

// RequestWithdrawal debits coins and files a pending withdrawal request
func RequestWithdrawal(c *gin.Context) {
	utils.LogInfo("RequestWithdrawal called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount            int    `json:"amount" binding:"required"`
		AccountNumber     string `json:"account_number" binding:"required"`
		IFSCCode          string `json:"ifsc_code" binding:"required"`
		AccountHolderName string `json:"account_holder_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount and bank details are required", err.Error())
		return
	}

	withdrawal, err := services.RequestWithdrawal(user.ID, req.Amount, req.AccountNumber, req.IFSCCode, req.AccountHolderName)
	if err != nil {
		utils.LogError("Withdrawal request failed for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d requested withdrawal of %d coins", user.ID, req.Amount)

	utils.Created(c, "Withdrawal request submitted", gin.H{
		"withdrawal_id": withdrawal.ID,
		"amount":        withdrawal.Amount,
		"status":        withdrawal.Status,
		"requested_at":  withdrawal.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// HasPurchased reports whether the user ever bought coins
func HasPurchased(c *gin.Context) {
	utils.LogInfo("HasPurchased called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	purchased, err := services.HasPurchased(user.ID)
	if err != nil {
		utils.LogError("Failed to check purchases for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Purchase status retrieved", gin.H{
		"has_purchased": purchased,
		"user":          fmt.Sprintf("%d", user.ID),
	})
}
