package routes

import (
	"github.com/vibely-app/vibely-backend/controllers"
	"github.com/vibely-app/vibely-backend/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-facing wallet routes
func initUserRoutes(router *gin.RouterGroup) {
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Wallet operations
		protected.GET("/wallet", controllers.GetWalletBalance)
		protected.GET("/wallet/transactions", controllers.GetWalletTransactions)
		protected.GET("/wallet/has-purchased", controllers.HasPurchased)
		protected.POST("/wallet/spend", controllers.SpendCoins)
		protected.POST("/wallet/earn", controllers.EarnCoins)
		protected.POST("/wallet/refund", controllers.RefundCoins)
		protected.POST("/wallet/transfer", controllers.TransferCoins)
		protected.POST("/wallet/withdraw", controllers.RequestWithdrawal)

		// Coin purchase via Razorpay
		protected.POST("/wallet/order", controllers.CreateCoinOrder)
		protected.POST("/wallet/purchase", controllers.VerifyCoinPurchase)

		// Gifts
		protected.GET("/gifts", controllers.ListGifts)
		protected.POST("/gifts/send", controllers.SendGift)

		// Daily rewards and levels
		protected.GET("/rewards/daily", controllers.ListDailyRewards)
		protected.POST("/rewards/daily/:day/claim", controllers.ClaimDailyReward)
		protected.GET("/level", controllers.GetLevelProgress)
		protected.GET("/leaderboard", controllers.Leaderboard)

		// Offers
		protected.GET("/offers", controllers.ListOffers)
		protected.POST("/offers/:id/purchase", controllers.PurchaseOffer)
	}
}
