package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-session-auth/models"
)

// errTokenExists is returned by the memory storage on a token collision.
var errTokenExists = errors.New("session token already exists")

// memoryStorage is a process-local [Storage]. Sessions are lost on restart.
type memoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemoryStorage returns an empty, concurrency-safe in-memory [Storage].
func NewMemoryStorage() Storage {
	return &memoryStorage{
		sessions: make(map[string]models.Session),
	}
}

func (m *memoryStorage) Save(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.Token]; ok {
		return errTokenExists
	}
	m.sessions[s.Token] = s
	return nil
}

func (m *memoryStorage) Load(_ context.Context, token string) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *memoryStorage) Delete(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return false, nil
	}
	delete(m.sessions, token)
	return true, nil
}

func (m *memoryStorage) DeleteCreatedBefore(_ context.Context, t time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for token, s := range m.sessions {
		if s.CreatedAt.Before(t) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}
