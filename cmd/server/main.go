// Account service entrypoint: loads configuration, connects MongoDB and
// Redis, seeds the role catalog, starts the audit dispatcher and serves the
// HTTP API until SIGINT/SIGTERM.
//
// @title           Homekeeper Account Service API
// @version         1.0
// @description     Account management endpoints backed by MongoDB.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/homekeeper/account-service/docs"
	"github.com/homekeeper/account-service/internal/api"
	"github.com/homekeeper/account-service/internal/core/domain"
	"github.com/homekeeper/account-service/internal/core/service"
	mongodb "github.com/homekeeper/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/homekeeper/account-service/internal/infrastructure/db/redis"
	"github.com/homekeeper/account-service/internal/infrastructure/queue"
	"github.com/homekeeper/account-service/internal/pkg/config"
	"github.com/homekeeper/account-service/pkg/logger"
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

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Schema and reference data ---
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	roleRepo := mongodb.NewRoleRepository(db)
	if err := roleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create role indexes")
	}
	if err := roleRepo.Seed(ctx, domain.RoleUser, domain.RoleAdmin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	catalog, err := service.NewCachedRoleCatalog(ctx, roleRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load role catalog")
	}

	// --- Audit trail ---
	auditRepo := mongodb.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create audit indexes")
	}
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(auditRepo, log), log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		DB:         db,
		Redis:      rdb,
		Catalog:    catalog,
		Audit:      dispatcher,
		JWTSecret:  cfg.JWTSecret,
		BcryptCost: cfg.BcryptCost,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
