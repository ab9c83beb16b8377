package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-session-auth/models"
)

// memoryUserRepository keeps users in process memory. It is used when no
// database DSN is configured.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns an empty, concurrency-safe in-memory
// [UserRepository].
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (m *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return models.User{}, ErrEmailAlreadyExists
	}
	if _, ok := m.byID[user.ID]; ok {
		return models.User{}, ErrEmailAlreadyExists
	}

	m.byID[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return user, nil
}

func (m *memoryUserRepository) FindUser(_ context.Context, filter models.UserFilter) (models.User, error) {
	if err := filter.Validate(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case filter.ID != "":
		if u, ok := m.byID[filter.ID]; ok {
			return u, nil
		}
	case filter.Email != "":
		if id, ok := m.byEmail[filter.Email]; ok {
			return m.byID[id], nil
		}
	default:
		for _, u := range m.byID {
			if u.ResetToken != nil && *u.ResetToken == filter.ResetToken {
				return u, nil
			}
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (m *memoryUserRepository) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.byID))
	for _, u := range m.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (m *memoryUserRepository) UpdateUser(_ context.Context, id string, changes models.UserChanges) error {
	if changes.IsEmpty() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return ErrNoUserWasFound
	}
	if changes.IfResetToken != nil && (u.ResetToken == nil || *u.ResetToken != *changes.IfResetToken) {
		return ErrNoUserWasFound
	}

	if changes.HashedPassword != nil {
		u.HashedPassword = *changes.HashedPassword
	}
	switch {
	case changes.ClearResetToken:
		u.ResetToken = nil
	case changes.ResetToken != nil:
		token := *changes.ResetToken
		u.ResetToken = &token
	}
	if changes.FirstName != nil {
		u.FirstName = changes.FirstName
	}
	if changes.LastName != nil {
		u.LastName = changes.LastName
	}
	u.UpdatedAt = time.Now().UTC()

	m.byID[id] = u
	return nil
}

func (m *memoryUserRepository) CountUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.byID)), nil
}
