package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenDB initializes the Postgres connection pool.
func OpenDB(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}

	if cfg.DBUsername != "" {
		poolCfg.ConnConfig.User = cfg.DBUsername
		poolCfg.ConnConfig.Password = cfg.DBPassword
	}
	poolCfg.MaxConns = cfg.DBPoolSize
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = 20 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the users table if it does not exist yet. Safe to run
// on every start.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		email text NOT NULL,
		password_hash text NOT NULL DEFAULT '',
		status boolean NOT NULL DEFAULT true,
		user_group text NOT NULL DEFAULT 'User',
		created_at timestamptz NOT NULL DEFAULT now(),
		last_modified_at timestamptz NOT NULL DEFAULT now()
	);`
	if _, err := db.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensuring users table: %w", err)
	}
	return nil
}
