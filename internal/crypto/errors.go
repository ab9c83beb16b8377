package crypto

import "errors"

var (
	// ErrHashing is returned when the hashing primitive cannot process the
	// input (for example a password longer than bcrypt accepts).
	ErrHashing = errors.New("password hashing failed")

	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
)
