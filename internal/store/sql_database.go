package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/migrations"
)

const (
	maxRetries   = 3
	retryBackoff = 50 * time.Millisecond
)

// DB wraps a *sql.DB with its dialect, error classifier and logger.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Connect opens the database selected by cfg.DSN: postgres:// or
// postgresql:// selects PostgreSQL, file:, sqlite:// or a path ending in .db
// selects SQLite.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case isPostgresDSN(cfg.DSN):
		return NewConnectPostgres(ctx, cfg, log)
	case isSQLiteDSN(cfg.DSN):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DSN)
	}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func isSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") ||
		strings.HasPrefix(dsn, "sqlite://") ||
		strings.HasSuffix(dsn, ".db") ||
		dsn == ":memory:"
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// builder returns a squirrel statement builder using the placeholder format
// of the dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == migrations.DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// withRetry runs fn, retrying it with exponential backoff while the error
// classifier reports the failure as transient. Only idempotent operations
// may be passed.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := doWithRetry(ctx, db, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// doWithRetry is withRetry for operations returning a value.
func doWithRetry[T any](ctx context.Context, db *DB, fn func(ctx context.Context) (T, error)) (T, error) {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBackoff))

	return retry.DoValue(ctx, backoff, func(ctx context.Context) (T, error) {
		v, err := fn(ctx)
		if err != nil && db.retryable(err) {
			logger.FromContext(ctx).Warn().Err(err).Msg("retrying transient database error")
			return v, retry.RetryableError(err)
		}
		return v, err
	})
}

func (db *DB) retryable(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}

// isUniqueViolation reports whether err is a unique or primary key
// constraint violation of either supported driver.
func isUniqueViolation(err error) bool {
	return isPostgresUniqueViolation(err) || isSQLiteUniqueViolation(err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
