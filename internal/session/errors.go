// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrInvalidArgument is returned when a session is requested for an empty
	// user identifier.
	ErrInvalidArgument = errors.New("invalid argument: user id is empty")

	// ErrSessionNotFound is returned for absent, destroyed and expired tokens
	// alike. Callers cannot distinguish the three cases.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTokenGeneration is returned when the random source fails.
	ErrTokenGeneration = errors.New("session token generation failed")
)
