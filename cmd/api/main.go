package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"datamint/internal/config"
	"datamint/internal/database"
	"datamint/internal/handlers"
	"datamint/internal/logger"
	"datamint/internal/middleware"
	"datamint/internal/services"
	"datamint/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "datamint/internal/docs" // Import swagger docs
)

// @title           Datamint API
// @version         1.0
// @description     Datamint is a marketplace for tokenized datasets with bonding-curve pricing, fractional ownership, and atomic purchase settlement.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Registrar API key for mint, unlist, and deposit operations.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	eventService := services.NewEventService(db)
	curveService := services.NewCurveService(db)
	ledgerService := services.NewLedgerService(db)
	paymentService := services.NewPaymentService(db)
	datasetService := services.NewDatasetService(db, curveService, ledgerService)
	settlementService := services.NewSettlementService(db, curveService, ledgerService, paymentService, eventService)
	snapshotService := services.NewSnapshotService(db, curveService)

	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(datasetService, curveService, ledgerService, snapshotService, eventService)
	purchaseHandler := handlers.NewPurchaseHandler(settlementService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, eventService)

	// Price snapshot job
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(appConfig.SnapshotSchedule, func() {
		count, err := snapshotService.CaptureAll(time.Now())
		if err != nil {
			log.Errorw("price snapshot sweep failed", "error", err)
			return
		}
		log.Infow("price snapshot sweep complete", "snapshots", count)
	}); err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public catalog and pricing routes
	datasets := v1.Group("/datasets")
	datasets.GET("", datasetHandler.ListDatasets)
	datasets.GET("/:id", datasetHandler.GetDataset)
	datasets.GET("/:id/shares", datasetHandler.GetShares)
	datasets.GET("/:id/price", datasetHandler.GetPrice)
	datasets.GET("/:id/curve", datasetHandler.GetCurveState)
	datasets.GET("/:id/price-history", datasetHandler.GetPriceHistory)

	// Registrar routes
	registrar := v1.Group("/")
	registrar.Use(middleware.RegistrarAuthMiddleware(appConfig.RegistrarAPIKey))
	registrar.POST("/datasets", datasetHandler.MintDataset)
	registrar.DELETE("/datasets/:id", datasetHandler.UnlistDataset)
	registrar.POST("/wallet/deposit", paymentHandler.Deposit)

	// Buyer routes
	buyer := v1.Group("/")
	buyer.Use(middleware.BuyerAuth())
	buyer.POST("/datasets/:id/purchase", purchaseHandler.PurchaseDataset)
	buyer.GET("/purchases", purchaseHandler.ListMyPurchases)
	buyer.GET("/wallet/balance", paymentHandler.GetBalance)
	buyer.POST("/wallet/approve", paymentHandler.Approve)
	buyer.GET("/wallet/allowance", paymentHandler.GetAllowance)

	log.Infof("Starting Datamint API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
