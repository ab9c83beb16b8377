package models

import (
	"errors"
	"time"
)

// ErrInvalidUserFilter is returned by [UserFilter.Validate] when the filter
// does not contain exactly one criterion.
var ErrInvalidUserFilter = errors.New("user filter must contain exactly one criterion")

// User represents an account entity used for authentication.
// Sensitive fields are never serialized to JSON.
type User struct {
	// ID is the opaque unique identifier of the user.
	ID string `json:"id"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// HashedPassword is the salted one-way digest of the user's password.
	// It never leaves the server and must never be logged.
	HashedPassword string `json:"-"`

	// ResetToken holds the SHA-256 digest of the outstanding password-reset
	// token, or nil when no reset is pending.
	ResetToken *string `json:"-"`

	// FirstName and LastName are optional display attributes.
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// DisplayName returns a human readable name built from the first and last
// name, falling back to the email when neither is set.
func (u User) DisplayName() string {
	switch {
	case u.FirstName == nil && u.LastName == nil:
		return u.Email
	case u.LastName == nil:
		return *u.FirstName
	case u.FirstName == nil:
		return *u.LastName
	default:
		return *u.FirstName + " " + *u.LastName
	}
}

// UserFilter selects a single user by one equality criterion.
// Exactly one field must be non-empty.
type UserFilter struct {
	ID    string
	Email string

	// ResetToken is matched against the stored reset-token digest, so it must
	// already be hashed by the caller.
	ResetToken string
}

// Validate reports whether exactly one criterion is set.
func (f UserFilter) Validate() error {
	set := 0
	for _, v := range []string{f.ID, f.Email, f.ResetToken} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return ErrInvalidUserFilter
	}
	return nil
}

// UserChanges describes a partial update of a user record. Nil fields are
// left untouched.
type UserChanges struct {
	HashedPassword *string
	ResetToken     *string

	// ClearResetToken sets the stored reset token to NULL. It takes precedence
	// over ResetToken.
	ClearResetToken bool

	FirstName *string
	LastName  *string

	// IfResetToken turns the update into a compare-and-set: it only applies
	// when the stored reset-token digest equals this value.
	IfResetToken *string
}

// IsEmpty reports whether the changes would not modify any column.
func (c UserChanges) IsEmpty() bool {
	return c.HashedPassword == nil &&
		c.ResetToken == nil &&
		!c.ClearResetToken &&
		c.FirstName == nil &&
		c.LastName == nil
}
