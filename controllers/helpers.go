package controllers

import (
	"errors"

	"github.com/vibely-app/vibely-backend/models"
	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed in the context by the auth
// middleware.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// respondServiceError maps wallet business errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidDay),
		errors.Is(err, services.ErrPaymentIncomplete),
		errors.Is(err, services.ErrNotCoinPackage):
		utils.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientFunds):
		utils.BadRequest(c, "Insufficient funds", nil)
	case errors.Is(err, services.ErrSignatureVerification):
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
	case errors.Is(err, services.ErrMockPaymentForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGiftNotFound),
		errors.Is(err, services.ErrOfferNotFound),
		errors.Is(err, services.ErrRewardNotFound),
		errors.Is(err, services.ErrWalletNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrGatewayNotConfigured):
		utils.InternalServerError(c, "Razorpay not configured", nil)
	default:
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}
