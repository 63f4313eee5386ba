package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopflow/storefront-api/internal/api/handler"
	"github.com/shopflow/storefront-api/internal/api/middleware"
	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/service"
	mongodb "github.com/shopflow/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopflow/storefront-api/internal/infrastructure/db/redis"
	"github.com/shopflow/storefront-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("shopflow"))

	// --- Dependencies ---
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	cartStore := redisdb.NewCartStore(rdb, cfg.CartTTL, log)

	authService := service.NewAuthService(profileRepo, cfg.JWTSecret, cfg.SessionTTL, log)
	productService := service.NewProductService(productRepo, log)
	cartService := service.NewCartService(cartStore, productRepo, log)
	checkoutService := service.NewCheckoutService(productRepo, orderRepo, cartStore, log)
	orderService := service.NewOrderService(orderRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Catalog: reads are public, writes are admin only ---
	e.GET("/v1/products", productHandler.List)
	e.GET("/v1/products/:id", productHandler.Get)
	e.POST("/v1/products", productHandler.Create, authRequired, adminOnly)
	e.PUT("/v1/products/:id", productHandler.Update, authRequired, adminOnly)
	e.DELETE("/v1/products/:id", productHandler.Delete, authRequired, adminOnly)

	// --- Authenticated storefront routes ---
	v1 := e.Group("/v1", authRequired)

	v1.GET("/me", authHandler.Me)
	v1.PUT("/me", authHandler.UpdateMe)

	v1.GET("/cart", cartHandler.Get)
	v1.PUT("/cart", cartHandler.Replace)
	v1.DELETE("/cart", cartHandler.Clear)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PUT("/cart/items/:product_id", cartHandler.SetQuantity)
	v1.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)

	v1.POST("/checkout/validate", checkoutHandler.Validate)
	v1.POST("/checkout", checkoutHandler.PlaceOrder)

	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	return e
}
