package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopflow/storefront-api/internal/api"
	"github.com/shopflow/storefront-api/internal/core/service"
	mongodb "github.com/shopflow/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopflow/storefront-api/internal/infrastructure/db/redis"
	"github.com/shopflow/storefront-api/internal/pkg/config"
	"github.com/shopflow/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           ShopFlow Storefront API
// @version         1.0
// @description     Product catalog, cart, checkout and order management for the ShopFlow storefront.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx,
		mongodb.NewProductRepository(db),
		mongodb.NewOrderRepository(db),
		mongodb.NewProfileRepository(db),
	); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// Seed the bootstrap admin before serving traffic. Signup only ever
	// creates regular users.
	authService := service.NewAuthService(mongodb.NewProfileRepository(db), cfg.JWTSecret, cfg.SessionTTL, log)
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.DisplayName); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
