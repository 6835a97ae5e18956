// Package db provides database connection management for pgedge-shopdata.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-shopdata/internal/logging"
)

// DB is the subset of pgx behaviour the schema builder, loader and query
// runner need. *pgx.Conn, *pgxpool.Pool and pgx.Tx all satisfy it.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// DefaultConnectTimeout bounds how long establishing a connection may take.
const DefaultConnectTimeout = 10 * time.Second

// Connect opens the single connection a run holds for its whole duration.
// Callers must Close it on every exit path.
func Connect(ctx context.Context, connString string) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}

	logging.Debug().
		Str("host", config.Host).
		Uint16("port", config.Port).
		Str("database", config.Database).
		Msg("Connecting to database")

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Verify connection
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.Host).
		Str("database", config.Database).
		Msg("Connected to database")

	return conn, nil
}

// Close releases conn, logging rather than returning any error so it can
// be deferred.
func Close(ctx context.Context, conn *pgx.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(ctx); err != nil {
		logging.Warn().Err(err).Msg("Error closing database connection")
		return
	}
	logging.Debug().Msg("Database connection closed")
}

// CountRows returns the number of rows currently stored in table.
func CountRows(ctx context.Context, conn DB, table string) (int64, error) {
	var n int64
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := conn.QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}
