package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"todo-api/internal/config"
	"todo-api/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS todo (
	id           SERIAL PRIMARY KEY,
	title        TEXT    NOT NULL,
	description  TEXT,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE
)`

// Open connects to Postgres and returns the connection pool. The caller owns
// the pool and is responsible for closing it.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBPoolSize)
	db.SetMaxIdleConns(cfg.DBPoolSize / 2)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	return db, nil
}

// EnsureSchema creates the todo table if it does not exist. Idempotent; no
// migration handling beyond this.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
