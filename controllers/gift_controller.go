package controllers

import (
	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
	"github.com/gin-gonic/gin"
)

// ListGifts returns the gift catalog
func ListGifts(c *gin.Context) {
	utils.LogInfo("ListGifts called")

	gifts, err := services.ListGifts()
	if err != nil {
		utils.LogError("Failed to list gifts: %v", err)
		utils.InternalServerError(c, "Failed to list gifts", err.Error())
		return
	}

	utils.Success(c, "Gifts retrieved successfully", gin.H{"gifts": gifts})
}

// SendGift sends a gift to another user, moving its cost between wallets
func SendGift(c *gin.Context) {
	utils.LogInfo("SendGift called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		GiftID     uint `json:"gift_id" binding:"required"`
		ReceiverID uint `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. gift_id and receiver_id are required", err.Error())
		return
	}

	wallet, giftTxn, err := services.SendGift(user.ID, req.ReceiverID, req.GiftID)
	if err != nil {
		utils.LogError("Gift send failed from user ID: %d to user ID: %d: %v", user.ID, req.ReceiverID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d sent gift %d to user %d", user.ID, req.GiftID, req.ReceiverID)

	utils.Success(c, "Gift sent!", gin.H{
		"gift_transaction_id": giftTxn.ID,
		"new_balance":         wallet.CoinBalance,
	})
}
