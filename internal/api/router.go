package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teconect/accounts-api/internal/api/handler"
	"github.com/teconect/accounts-api/internal/api/middleware"
	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/service"
	"github.com/teconect/accounts-api/internal/infrastructure/config"
	"github.com/teconect/accounts-api/internal/infrastructure/crypto"
	mongodb "github.com/teconect/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teconect/accounts-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/teconect/accounts-api/internal/infrastructure/http/handlers"
)

// Per-route request budgets per caller IP per minute, mirroring the tiers
// the service has always enforced.
const (
	registerLimit   = 5
	loginLimit      = 10
	selfReadLimit   = 10
	selfWriteLimit  = 5
	selfDeleteLimit = 3
	adminReadLimit  = 10
	adminCountLimit = 5
	adminWriteLimit = 3
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenTTL())
	gate := service.NewAuthGate(tokens, userRepo, log)
	accountService := service.NewAccountService(userRepo, hasher, tokens)
	adminService := service.NewAdminService(userRepo)

	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	adminHandler := handler.NewAdminHandler(adminService)

	authMW := middleware.Auth(gate)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleRoot)

	limiter := redisdb.NewRateLimiter(rdb, time.Minute)
	limit := func(scope string, perMinute int) echo.MiddlewareFunc {
		return middleware.RateLimit(limiter, scope, perMinute, log)
	}

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Teconect API"})
	}, limit("root", adminCountLimit))

	e.POST("/auth/register", authHandler.Register, limit("register", registerLimit))
	e.POST("/auth/login", authHandler.Login, limit("login", loginLimit))

	// --- Self-service routes (gate, no role restriction) ---
	me := e.Group("/me", authMW)
	me.GET("", accountHandler.Self, limit("self_read", selfReadLimit))
	me.PUT("", accountHandler.UpdateSelf, limit("self_write", selfWriteLimit))
	me.DELETE("", accountHandler.DeleteSelf, limit("self_delete", selfDeleteLimit))

	// --- Admin routes (gate + RBAC) ---
	admin := e.Group("/admin", authMW, adminOnly)
	admin.GET("/users", adminHandler.ListUsers, limit("admin_list", adminReadLimit))
	admin.GET("/users/total", adminHandler.CountUsers, limit("admin_count", adminCountLimit))
	admin.GET("/users/online", adminHandler.CountOnline, limit("admin_online", adminCountLimit))
	admin.PUT("/users/:id/suspend", adminHandler.Suspend, limit("admin_write", adminWriteLimit))
	admin.PUT("/users/:id/activate", adminHandler.Activate, limit("admin_write", adminWriteLimit))
	admin.DELETE("/users/:id", adminHandler.Delete, limit("admin_write", adminWriteLimit))
	admin.PUT("/users/:id/edit", adminHandler.Update, limit("admin_write", adminWriteLimit))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
