// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a Go client for the go-session-auth HTTP API.
//
// The primary abstraction is [ServerAdapter]. The package ships a resty based
// implementation ([NewHTTPServerAdapter]) that keeps the session token returned
// by Login and replays it as the session cookie on every later request.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values in
// errors.go, so callers can use [errors.Is] (e.g. [ErrForbidden] for 403,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-session-auth/models"
)

// ServerAdapter defines the client side of the go-session-auth API.
type ServerAdapter interface {
	// SetToken stores the session token attached to all subsequent requests
	// as the session cookie. An empty token stops sending the cookie.
	SetToken(token string)

	// Token returns the session token currently held, or "".
	Token() string

	// Status reports the server health string.
	Status(ctx context.Context) (string, error)

	// Register creates a new user. The adapter stays logged out.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login opens a session and stores its token via SetToken.
	Login(ctx context.Context, email, password string) (models.User, error)

	// Logout destroys the current session and forgets its token. It returns
	// [ErrNotFound] when the server no longer knows the session.
	Logout(ctx context.Context) error

	// Me returns the user owning the current session.
	Me(ctx context.Context) (models.User, error)

	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, id string) (models.User, error)

	// ListUsers returns every registered user.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateMe changes the names of the user owning the current session.
	UpdateMe(ctx context.Context, req models.UpdateUserRequest) (models.User, error)

	// Stats returns the number of registered users.
	Stats(ctx context.Context) (models.StatsResponse, error)

	// RequestPasswordReset asks for a reset token for email.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset sets a new password using a reset token.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}
