package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schemaSQL
}

// Migrate applies the idempotent schema. Statements use IF NOT EXISTS so it
// is safe to run on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema failed: %w", err)
	}
	return nil
}
