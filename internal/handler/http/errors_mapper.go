package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-session-auth/internal/crypto"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/service"
	"github.com/MKhiriev/go-session-auth/internal/store"
	"github.com/MKhiriev/go-session-auth/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrAlreadyExists:       http.StatusConflict,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrNoIdentity:          http.StatusForbidden,
	service.ErrInvalidToken:        http.StatusForbidden,
	service.ErrNotFound:            http.StatusNotFound,

	crypto.ErrEmptyPassword: http.StatusBadRequest,
	crypto.ErrHashing:       http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

// errorMessages overrides the client-facing text for some errors.
var errorMessages = map[error]string{
	service.ErrAlreadyExists:      "email already registered",
	service.ErrInvalidCredentials: "invalid credentials",
	service.ErrNoIdentity:         msgForbidden,
	service.ErrInvalidToken:       msgForbidden,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	if status == http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError)
	}
	for target, msg := range errorMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

// writeServiceError maps err to a status code and writes it as a JSON error.
// Internal errors are logged and never echoed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("unexpected error occurred")
	}
	utils.WriteError(w, messageFromError(err, status), status)
}
