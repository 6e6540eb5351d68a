package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accesshub/rbac-service/internal/api/handler"
	"github.com/accesshub/rbac-service/internal/api/middleware"
	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
	"github.com/accesshub/rbac-service/internal/core/service"
	"github.com/accesshub/rbac-service/internal/infrastructure/config"
	mongodb "github.com/accesshub/rbac-service/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, client *mongo.Client, db *mongo.Database, rdb *redis.Client, notifier ports.AuditNotifier, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rbac"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	uow := mongodb.NewUnitOfWork(client)

	hasher := service.NewPasswordHasher()
	tokens, err := service.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		time.Duration(cfg.JWT.TTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, err
	}

	recorder := service.NewAuditRecorder(auditRepo, notifier)
	authService := service.NewAuthService(userRepo, hasher, tokens, recorder)
	accessService := service.NewAccessService(tokens, userRepo)
	userService := service.NewUserService(uow, userRepo, roleRepo, hasher, recorder, cfg.DefaultRole)

	authHandler := handler.NewAuthHandler(authService, userService, tokens)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(roleRepo, recorder)

	authn := middleware.Auth(accessService)
	active := middleware.RequireLevel(0) // any active account
	admin := middleware.RequireLevel(domain.LevelAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authn, active)

	// --- User routes ---
	e.GET("/users/me", userHandler.Me, authn, active)
	e.GET("/users", userHandler.List, authn, admin)
	e.POST("/users", userHandler.Create, authn, admin)
	e.PUT("/users/:id/roles", userHandler.AssignRoles, authn, admin)

	// --- Admin routes ---
	e.GET("/admin/roles", adminHandler.ListRoles, authn, admin)
	e.GET("/admin/logs", adminHandler.ListLogs, authn, admin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
