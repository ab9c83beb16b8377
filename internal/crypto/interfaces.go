// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher owns password digest computation and verification.
// Implementations hold no mutable shared state and are safe for concurrent
// use. Both operations are deliberately CPU-expensive.
type PasswordHasher interface {
	// Hash produces a salted, irreversible digest of plaintext. Hashing the
	// same plaintext twice yields different digests that both verify.
	// Returns ErrEmptyPassword for an empty input and ErrHashing when the
	// underlying primitive rejects the input.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. The comparison runs in
	// constant time with respect to the position of the first mismatch.
	// Malformed hashes never verify.
	Verify(hash, plaintext string) bool
}
