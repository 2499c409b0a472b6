// Command server runs the messaging-gateway HTTP API.
//
// Startup order: env → config → logging → tracing → database → routes.
// The process stops on SIGINT/SIGTERM with a bounded graceful shutdown so
// in-flight webhook deliveries finish before the listener closes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omnidesk/go-gateway-backend/internal/ai"
	"github.com/omnidesk/go-gateway-backend/internal/config"
	httpapi "github.com/omnidesk/go-gateway-backend/internal/http"
	"github.com/omnidesk/go-gateway-backend/internal/observability"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
	"github.com/omnidesk/go-gateway-backend/internal/sysutil"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

// version is stamped by the build (-ldflags "-X main.version=...").
var version = "dev"

// @title           Omnidesk Gateway API
// @version         1.0
// @description     Multi-tenant messaging gateway: provider webhooks, AI replies, operator console.
// @BasePath        /api/v1
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shCtx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("database open failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	if err := repo.SeedPlans(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("plan seed failed")
	}

	v, err := vault.New(cfg.VaultKey)
	if err != nil {
		log.Fatal().Err(err).Msg("vault init failed")
	}

	aiClient := ai.NewOpenAIClient(cfg.AI.Model, cfg.AI.Timeout)
	aiClient.MaxTokens = cfg.AI.MaxTokens

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, v, aiClient, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
