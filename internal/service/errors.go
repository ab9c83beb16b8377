// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Domain errors returned by the services. The HTTP layer maps each of them to
// a status code; callers match them with [errors.Is].
var (
	// ErrAlreadyExists is returned by registration when the email is taken.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned by login for an unknown email and for
	// a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a reset token is absent, unknown or
	// already consumed.
	ErrInvalidToken = errors.New("invalid reset token")

	// ErrNotFound is returned when a user expected to exist is missing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDataProvided is returned when a required field is empty.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrNoIdentity is returned by identity resolution when no extractor
	// produced a usable proof.
	ErrNoIdentity = errors.New("no identity could be resolved")

	// ErrVersionIsNotSpecified is returned when the application version is
	// missing from the build info.
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
