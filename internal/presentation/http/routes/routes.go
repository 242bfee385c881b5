package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/config"
	domainRepo "github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/handler"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/middleware"
	"github.com/tuanvm/stockwise-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Supplier  *handler.SupplierHandler
	Customer  *handler.CustomerHandler
	Category  *handler.CategoryHandler
	Unit      *handler.UnitHandler
	Product   *handler.ProductHandler
	Purchase  *handler.PurchaseHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Inventory *handler.InventoryHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Summary)

	registerCatalogRoutes(protected, h)
	registerOrderRoutes(protected, h, deps)
	registerInventoryRoutes(protected, h)
	registerUserRoutes(protected, h)
}

// registerCatalogRoutes wires suppliers, customers, categories, units and
// products. Reads are open to any signed-in role; mutations require a
// manager or admin.
func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	manage := middleware.RequireManagement()

	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("", manage, h.Supplier.Create)
		suppliers.PUT("/:id", manage, h.Supplier.Update)
		suppliers.DELETE("/:id", manage, h.Supplier.Delete)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", manage, h.Customer.Create)
		customers.PUT("/:id", manage, h.Customer.Update)
		customers.DELETE("/:id", manage, h.Customer.Delete)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", manage, h.Category.Create)
		categories.PUT("/:id", manage, h.Category.Update)
		categories.DELETE("/:id", manage, h.Category.Delete)
	}

	units := protected.Group("/units")
	{
		units.GET("", h.Unit.List)
		units.GET("/:id", h.Unit.Get)
		units.POST("", manage, h.Unit.Create)
		units.PUT("/:id", manage, h.Unit.Update)
		units.DELETE("/:id", manage, h.Unit.Delete)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", manage, h.Product.Create)
		products.PUT("/:id", manage, h.Product.Update)
		products.DELETE("/:id", manage, h.Product.Delete)
	}
}

// registerOrderRoutes wires purchases and invoices. Draft creation is open
// to every signed-in role (employees draft orders) and guarded by the
// idempotency middleware; approval and rejection require management.
func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	manage := middleware.RequireManagement()
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.GET("/pending", h.Purchase.ListPending)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("", idempotency, h.Purchase.Create)
		purchases.POST("/:id/approve", manage, h.Purchase.Approve)
		purchases.DELETE("/:id", manage, h.Purchase.Reject)
	}

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/pending", h.Invoice.ListPending)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("", idempotency, h.Invoice.Create)
		invoices.POST("/:id/approve", manage, h.Invoice.Approve)
		invoices.DELETE("/:id", manage, h.Invoice.Reject)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.Inventory.Snapshot)
		inventory.GET("/export", h.Inventory.Export)
		inventory.POST("/import", middleware.RequireManagement(), h.Inventory.Import)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireManagement())
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}
}
