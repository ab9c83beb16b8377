package store

import (
	"context"

	"github.com/MKhiriev/go-session-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts a new user and returns the stored record.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUser returns the single user matching filter or [ErrNoUserWasFound].
	FindUser(ctx context.Context, filter models.UserFilter) (models.User, error)

	// ListUsers returns every stored user ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser applies changes to the user with the given id. When
	// changes.IfResetToken is set the update only applies if the stored
	// reset token still matches it. Nothing updated yields [ErrNoUserWasFound].
	UpdateUser(ctx context.Context, id string, changes models.UserChanges) error

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)
}
