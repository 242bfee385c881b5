package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/application/service"
	"github.com/tuanvm/stockwise-api/internal/config"
	"github.com/tuanvm/stockwise-api/internal/infrastructure/database"
	"github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/handler"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/routes"
	"github.com/tuanvm/stockwise-api/pkg/email"
	"github.com/tuanvm/stockwise-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the initial admin account if configured
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	userService := service.NewUserService(userRepo)
	supplierService := service.NewSupplierService(supplierRepo, productRepo)
	customerService := service.NewCustomerService(customerRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	unitService := service.NewUnitService(unitRepo, productRepo)
	productService := service.NewProductService(productRepo, supplierRepo, categoryRepo, unitRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, customerRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)
	inventoryService := service.NewInventoryService(productRepo, supplierRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Customer:  handler.NewCustomerHandler(customerService),
		Category:  handler.NewCategoryHandler(categoryService),
		Unit:      handler.NewUnitHandler(unitService),
		Product:   handler.NewProductHandler(productService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Inventory: handler.NewInventoryHandler(inventoryService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
