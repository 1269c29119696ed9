package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// ProbeDatabase verifies that the configured database is reachable. The
// bot keeps no business data there; the probe exists so a broken
// DATABASE_URL shows up in the logs at startup instead of when someone
// later adds persistence. The driver is picked from the URL scheme:
// postgres:// goes through pgx, anything else is treated as a SQLite
// path. Callers log the error and start anyway.
func ProbeDatabase(ctx context.Context, connString string) error {
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		return probePostgres(ctx, connString)
	}
	return probeSQLite(ctx, connString)
}

func probePostgres(ctx context.Context, connString string) error {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("unable to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}
	return nil
}

func probeSQLite(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("unable to open sqlite database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("unable to ping sqlite database: %w", err)
	}
	return nil
}
