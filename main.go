package main

import (
	"log"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/controllers"
	"github.com/vibely-app/vibely-backend/routes"
	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Payment gateway gets its credentials injected here; nothing else reads
	// the Razorpay keys.
	controllers.InitPaymentGateway(services.NewPaymentGateway(services.RazorpayConfig{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		Env:       cfg.Env,
	}))

	// Ledger events go to Kafka when a broker is configured
	if len(cfg.KafkaBrokers) > 0 {
		services.SetEventPublisher(services.NewKafkaPublisher(cfg.KafkaBrokers))
	}

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
