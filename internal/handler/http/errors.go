// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request validation errors. Their messages are returned to the client as
// the "error" field of a 400 response.
var (
	ErrWrongFormat        = errors.New("Wrong format")
	ErrEmailMissing       = errors.New("email missing")
	ErrPasswordMissing    = errors.New("password missing")
	ErrResetTokenMissing  = errors.New("reset_token missing")
	ErrNewPasswordMissing = errors.New("new_password missing")
)

const (
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
	msgNotFound     = "Not found"
)

// meUserID stands for the authenticated caller in /users/{id} routes.
const meUserID = "me"
