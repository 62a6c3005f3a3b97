package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adminhub/identity-system/internal/api/handler"
	"github.com/adminhub/identity-system/internal/api/middleware"
	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/service"
	mongodb "github.com/adminhub/identity-system/internal/infrastructure/db/mongo"
	redisdb "github.com/adminhub/identity-system/internal/infrastructure/db/redis"
	"github.com/adminhub/identity-system/internal/infrastructure/http/handlers"
	"github.com/adminhub/identity-system/internal/pkg/config"
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
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	versionRepo := mongodb.NewVersionRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	clock := service.SystemClock{}
	recorder := service.NewChangeRecorder(versionRepo, auditRepo, clock, log)
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL, clock)
	authService := service.NewAuthService(userRepo, recorder, tokens, clock, log)
	userService := service.NewUserService(userRepo, versionRepo, recorder, redisdb.NewStatsCache(rdb), clock, log)
	historyService := service.NewHistoryService(versionRepo, auditRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	historyHandler := handler.NewHistoryHandler(historyService)

	authMW := middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	adminMW := middleware.RBAC(string(domain.RoleAdmin))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated self-service routes ---
	users := e.Group("/users", authMW)
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.PUT("/change-password", authHandler.ChangePassword)
	users.GET("/statistics", userHandler.Statistics)

	// --- Admin routes ---
	admin := users.Group("", adminMW)
	admin.GET("", userHandler.List)
	admin.POST("", userHandler.Create)
	admin.GET("/:id", userHandler.Get)
	admin.PUT("/:id", userHandler.Update)
	admin.DELETE("/:id", userHandler.Delete)
	admin.POST("/:userId/revert/:versionId", userHandler.Revert)
	admin.GET("/user-history/:userId", historyHandler.UserHistory)
	admin.GET("/audit-logs", historyHandler.AuditLogs)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
