// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import "errors"

// Sentinel errors returned by credential extractors. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request has no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUnsupportedScheme is returned when the "Authorization" header does not
	// use the Basic scheme.
	ErrUnsupportedScheme = errors.New("unsupported `Authorization` scheme")

	// ErrMalformedBase64 is returned when the Basic credentials are not valid
	// base64 or do not decode to UTF-8 text.
	ErrMalformedBase64 = errors.New("malformed base64 credentials")

	// ErrMissingSeparator is returned when decoded Basic credentials contain
	// no ':' between email and password.
	ErrMissingSeparator = errors.New("credentials lack `:` separator")

	// ErrNoSessionCookie is returned when the session cookie is absent or
	// empty.
	ErrNoSessionCookie = errors.New("no session cookie")
)
