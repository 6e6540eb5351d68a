package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accesshub/rbac-service/internal/api"
	"github.com/accesshub/rbac-service/internal/core/service"
	"github.com/accesshub/rbac-service/internal/infrastructure/config"
	mongodb "github.com/accesshub/rbac-service/internal/infrastructure/db/mongo"
	redisdb "github.com/accesshub/rbac-service/internal/infrastructure/db/redis"
	"github.com/accesshub/rbac-service/internal/infrastructure/queue"
	"github.com/accesshub/rbac-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := bootstrap(ctx, db, cfg); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, redisdb.NewAuditStream(rdb), log)
	dispatcher.Start(ctx)

	e, err := api.NewRouter(cfg, client, db, rdb, dispatcher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("rbac service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// bootstrap installs indexes, the role catalog, and the administrator
// account before the server accepts traffic.
func bootstrap(ctx context.Context, db *mongo.Database, cfg *config.Config) error {
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	if err := mongodb.SeedRoles(ctx, db); err != nil {
		return err
	}

	hash, err := service.NewPasswordHasher().Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}
	return mongodb.SeedAdmin(ctx, db, cfg.Seed.AdminUsername, cfg.Seed.AdminEmail, hash)
}
