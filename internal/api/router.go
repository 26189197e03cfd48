package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ashaconnect/payout-system/internal/api/handler"
	"github.com/ashaconnect/payout-system/internal/api/middleware"
	"github.com/ashaconnect/payout-system/internal/core/domain"
	"github.com/ashaconnect/payout-system/internal/core/ports"
	"github.com/ashaconnect/payout-system/internal/core/service"
	"github.com/ashaconnect/payout-system/internal/infrastructure/config"
	mongodb "github.com/ashaconnect/payout-system/internal/infrastructure/db/mongo"
	redisdb "github.com/ashaconnect/payout-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier receives payment lifecycle events; it is started by the caller.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, notifier ports.Notifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("payout"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	paymentService := service.NewPaymentService(paymentRepo, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.LoginRateLimit)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login, middleware.LoginRateLimit(loginLimiter, log))

	// --- Payment routes ---
	e.POST("/api/request", paymentHandler.Submit)
	e.GET("/api/payment", paymentHandler.List)
	e.GET("/api/payment/status", paymentHandler.Status)
	e.POST("/api/payment/reset", paymentHandler.Reset)
	e.POST("/api/payment/approve", paymentHandler.Approve, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
