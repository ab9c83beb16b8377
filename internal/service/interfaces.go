package service

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-session-auth/models"
)

// AuthService answers "who is the caller" and runs the login, logout,
// registration and password reset workflows.
type AuthService interface {
	// Register hashes the password and stores a new user.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies the credentials and opens a session.
	Login(ctx context.Context, email, password string) (string, models.User, error)

	// ResolveIdentity tries the configured extractors in order and returns
	// the first user they prove, or [ErrNoIdentity].
	ResolveIdentity(ctx context.Context, r *http.Request) (models.User, error)

	// Logout destroys the session and reports whether it existed.
	Logout(ctx context.Context, token string) (bool, error)

	// RequestPasswordReset issues a single-use reset token for email,
	// replacing any earlier one.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset consumes the reset token and sets the new
	// password in one atomic update.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	// HasCredentials reports whether r carries any identity proof at all.
	HasCredentials(r *http.Request) bool

	// RequiresAuth reports whether path must be authenticated.
	RequiresAuth(path string) bool

	// SessionCookieName is the name of the session cookie.
	SessionCookieName() string
}

type UserService interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser changes the display names of the user with id and returns
	// the updated record. An unknown id yields ErrNotFound.
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error)

	CountUsers(ctx context.Context) (int64, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
