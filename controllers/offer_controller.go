package controllers

import (
	"strconv"

	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
	"github.com/gin-gonic/gin"
)

// ListOffers returns currently active offers
func ListOffers(c *gin.Context) {
	utils.LogInfo("ListOffers called")

	offers, err := services.ListActiveOffers()
	if err != nil {
		utils.LogError("Failed to list offers: %v", err)
		utils.InternalServerError(c, "Failed to list offers", err.Error())
		return
	}

	utils.Success(c, "Offers retrieved successfully", gin.H{"offers": offers})
}

// PurchaseOffer settles a coin package offer and credits its coins
func PurchaseOffer(c *gin.Context) {
	utils.LogInfo("PurchaseOffer called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	offerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid offer id for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid offer id", nil)
		return
	}

	payment, err := services.PurchaseOffer(user.ID, uint(offerID))
	if err != nil {
		utils.LogError("Offer purchase failed for user ID: %d, offer ID: %d: %v", user.ID, offerID, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d purchased offer %d, coins added: %d", user.ID, offerID, payment.CoinsAdded)

	utils.Success(c, "Offer purchased successfully", gin.H{
		"payment_id":  payment.ID,
		"coins_added": payment.CoinsAdded,
	})
}
