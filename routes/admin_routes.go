package routes

import (
	"github.com/vibely-app/vibely-backend/controllers"
	"github.com/vibely-app/vibely-backend/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes admin reporting routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/wallet/transactions/export/excel", controllers.DownloadTransactionsReportExcel)
		admin.GET("/wallet/transactions/export/pdf", controllers.DownloadTransactionsReportPDF)
	}
}
