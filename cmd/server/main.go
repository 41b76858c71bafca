package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/app"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/config"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/db"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/logging"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/ratelimit"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		App:         "rentique-api",
		Environment: cfg.Environment,
	})
	ctx = logger.WithContext(ctx)

	// Connect DB
	pool, err := db.NewPool(ctx, db.PoolOptions{
		DSN:      cfg.DBDSN,
		MaxConns: cfg.DBMaxConns,
		AppName:  "rentique-api",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer pool.Close()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate db")
		}
		logger.Info().Msg("database schema up to date")
	}

	// Redis is optional; fall back to in-process limits when unreachable.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := ratelimit.Ping(ctx, redisClient); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory rate limits")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	container := app.NewContainer(app.Deps{
		Config: cfg,
		DBPool: pool,
		Logger: logger,
		Redis:  redisClient,
	})

	container.Start(ctx)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}
