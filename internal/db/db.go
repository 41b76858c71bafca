package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PoolOptions configures the application's connection pool.
type PoolOptions struct {
	DSN string
	// MaxConns <= 0 keeps the pgxpool default.
	MaxConns int
	// AppName is reported as application_name in pg_stat_activity.
	AppName string
}

// ConfigFromOptions parses the DSN and applies rentique's session settings.
// Rental periods are timestamptz compared at day granularity, so every
// session runs in UTC regardless of the server default.
func ConfigFromOptions(opts PoolOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = int32(opts.MaxConns)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	params := cfg.ConnConfig.RuntimeParams
	params["timezone"] = "UTC"
	if opts.AppName != "" {
		params["application_name"] = opts.AppName
	}

	return cfg, nil
}

// NewPool creates the pgx pool and pings the database before returning it.
func NewPool(ctx context.Context, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := ConfigFromOptions(opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	// Use a short-lived context for the initial ping.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("host", cfg.ConnConfig.Host).
		Str("database", cfg.ConnConfig.Database).
		Int32("max_conns", cfg.MaxConns).
		Msg("database pool ready")

	return pool, nil
}
