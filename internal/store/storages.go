package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/session"
)

// Storages aggregates every persistence backend used by the services.
type Storages struct {
	UserRepository UserRepository
	SessionStorage session.Storage

	db *DB
}

// NewStorages builds the storages selected by cfg.DSN. With a DSN the
// database is connected and migrated and both users and sessions live in
// it; without one everything is kept in memory.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	if cfg.DSN == "" {
		log.Info().Msg("no database DSN configured, using in-memory storages")
		return &Storages{
			UserRepository: NewMemoryUserRepository(),
			SessionStorage: session.NewMemoryStorage(),
		}, nil
	}

	db, err := Connect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		SessionStorage: NewSessionRepository(db, log),
		db:             db,
	}, nil
}

// Persistent reports whether the storages are backed by a database.
func (s *Storages) Persistent() bool {
	return s.db != nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
