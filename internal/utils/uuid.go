package utils

import "github.com/google/uuid"

// NewUserID returns a time-ordered (version 7) identifier for a new user,
// or a random version 4 one if the clock-based generator fails.
func NewUserID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
