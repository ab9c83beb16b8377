// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/models"
	"github.com/google/uuid"
)

// Registry maps opaque session tokens to user identifiers.
//
// A Registry is safe for concurrent use as long as its [Storage] is. One
// Registry is created per process and injected wherever sessions are needed.
type Registry struct {
	storage  Storage
	ttl      time.Duration
	now      func() time.Time
	newToken TokenGenerator
}

// Option configures a [Registry].
type Option func(*Registry)

// WithTTL makes sessions expire ttl after creation. A non-positive ttl
// disables expiration.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// WithClock overrides the time source used for creation timestamps and
// expiration checks.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTokenGenerator overrides the token source.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(r *Registry) {
		if g != nil {
			r.newToken = g
		}
	}
}

// NewRegistry constructs a [Registry] over storage. By default sessions never
// expire and tokens are random (version 4) UUIDs carrying 122 bits of
// entropy from crypto/rand.
func NewRegistry(storage Storage, opts ...Option) *Registry {
	r := &Registry{
		storage:  storage,
		now:      time.Now,
		newToken: NewRandomToken,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRandomToken returns a random version 4 UUID string.
func NewRandomToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// TTL returns the configured session lifetime (zero when sessions never
// expire).
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Create mints a new session for userID and returns its token.
//
// Returns [ErrInvalidArgument] for an empty userID and [ErrTokenGeneration]
// when the random source fails. Storage errors are returned wrapped.
func (r *Registry) Create(ctx context.Context, userID string) (string, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return "", ErrInvalidArgument
	}

	token, err := r.newToken()
	if err != nil {
		log.Err(err).Msg("session token generation failed")
		return "", fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	s := models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: r.now().UTC(),
	}
	if err = r.storage.Save(ctx, s); err != nil {
		log.Err(err).Str("user_id", userID).Msg("error saving session")
		return "", fmt.Errorf("error saving session: %w", err)
	}

	return token, nil
}

// Resolve returns the user owning token.
//
// Absent, empty and expired tokens all yield [ErrSessionNotFound]. Storage
// failures other than a miss are returned wrapped.
func (r *Registry) Resolve(ctx context.Context, token string) (string, error) {
	s, err := r.load(ctx, token)
	if err != nil {
		return "", err
	}
	return s.UserID, nil
}

// Destroy removes the session for token and reports whether a live session
// existed. Destroying an unknown, already destroyed or expired token returns
// false. When several callers destroy the same token concurrently, exactly
// one of them gets true.
func (r *Registry) Destroy(ctx context.Context, token string) (bool, error) {
	_, err := r.load(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		// still reclaim an expired row, but report it as absent
		if token != "" {
			if _, delErr := r.storage.Delete(ctx, token); delErr != nil {
				return false, fmt.Errorf("error deleting session: %w", delErr)
			}
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	deleted, err := r.storage.Delete(ctx, token)
	if err != nil {
		return false, fmt.Errorf("error deleting session: %w", err)
	}
	return deleted, nil
}

// Sweep deletes sessions that are already expired and returns how many were
// removed. It is a no-op when expiration is disabled.
func (r *Registry) Sweep(ctx context.Context) (int64, error) {
	if r.ttl <= 0 {
		return 0, nil
	}

	n, err := r.storage.DeleteCreatedBefore(ctx, r.now().UTC().Add(-r.ttl))
	if err != nil {
		return 0, fmt.Errorf("error sweeping expired sessions: %w", err)
	}
	return n, nil
}

func (r *Registry) load(ctx context.Context, token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrSessionNotFound
	}

	s, err := r.storage.Load(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("error loading session: %w", err)
	}

	if s.UserID == "" || s.ExpiredAt(r.now(), r.ttl) {
		return models.Session{}, ErrSessionNotFound
	}
	return s, nil
}
