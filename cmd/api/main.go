package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"siteproof/internal/config"
	"siteproof/internal/database"
	"siteproof/internal/handlers"
	"siteproof/internal/logger"
	"siteproof/internal/middleware"
	"siteproof/internal/services"
	"siteproof/internal/storage"
	"siteproof/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "siteproof/internal/docs" // Import swagger docs
)

// @title           SiteProof API
// @version         1.0
// @description     SiteProof lets construction field staff capture photographic evidence of completed work packages and routes it through QS verification into a printable audit trail.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Photo store: S3 (or S3-compatible) when a bucket is configured,
	// in-memory otherwise. The in-memory store loses blobs on restart.
	var photos storage.PhotoStore
	if appConfig.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Endpoint:     appConfig.S3Endpoint,
			Region:       appConfig.S3Region,
			Bucket:       appConfig.S3Bucket,
			AccessKey:    appConfig.S3AccessKey,
			SecretKey:    appConfig.S3SecretKey,
			UsePathStyle: appConfig.S3UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 photo store: %w", err)
		}
		photos = s3Store
	} else {
		log.Warn("S3_BUCKET not set, using in-memory photo store; photos will not survive a restart")
		photos = storage.NewMemoryStore()
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	evidenceService := services.NewEvidenceService(db, photos, appConfig.SignedURLTTL)
	verificationService := services.NewVerificationService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceService, auditService)
	verificationHandler := handlers.NewVerificationHandler(verificationService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Session and profile
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	// Project routes
	projects := protected.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.GET("/:id/work-packages", projectHandler.ListWorkPackages)
	projects.GET("/:id/evidence", verificationHandler.ListPending)
	projects.POST("/:id/evidence", evidenceHandler.Capture)

	// Evidence routes
	evidence := protected.Group("/evidence")
	evidence.GET("/:id", evidenceHandler.GetDetail)
	evidence.POST("/:id/decision", verificationHandler.Decide)
	evidence.GET("/:id/pack", evidenceHandler.GetPack)

	log.Infof("Starting SiteProof backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
