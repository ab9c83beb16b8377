// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the persisted proof of a successful login. The token is the
// only thing handed to the client.
type Session struct {
	// Token is the opaque, unguessable session identifier.
	Token string `json:"session_id"`

	// UserID is the owner of the session.
	UserID string `json:"user_id"`

	// CreatedAt is when the session was minted. Expiration is computed from it
	// at resolve time.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "user_sessions"
}

// ExpiredAt reports whether a session living for ttl is expired at now.
// A non-positive ttl means the session never expires.
func (s Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.After(s.CreatedAt.Add(ttl))
}
