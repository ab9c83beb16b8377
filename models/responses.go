package models

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by the liveness endpoint.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatsResponse reports object counts per collection.
type StatsResponse struct {
	Users int64 `json:"users"`
}

// ResetPasswordResponse is returned when a reset token has been issued or
// consumed.
type ResetPasswordResponse struct {
	Email      string `json:"email,omitempty"`
	ResetToken string `json:"reset_token,omitempty"`
	Message    string `json:"message,omitempty"`
}
