package session

import (
	"context"
	"time"

	"github.com/MKhiriev/go-session-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_storage_mock.go -package=mock

// Storage persists sessions keyed by token. Every method must be atomic per
// token: in particular, when two callers delete the same token concurrently,
// exactly one of them observes deleted == true.
type Storage interface {
	// Save stores a new session. Tokens are unique; saving an existing token
	// is an error.
	Save(ctx context.Context, s models.Session) error

	// Load returns the session for token or [ErrSessionNotFound].
	Load(ctx context.Context, token string) (models.Session, error)

	// Delete removes the session for token and reports whether it existed.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteCreatedBefore removes every session created strictly before t
	// and returns the number of removed sessions.
	DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error)
}

// TokenGenerator produces new session tokens.
type TokenGenerator func() (string, error)
