package models

// RegisterRequest is the JSON body accepted by the user registration
// endpoint.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// UpdateUserRequest is the JSON body accepted by the user update endpoint.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Form field names used by the session and password-reset endpoints.
const (
	FormEmail       = "email"
	FormPassword    = "password"
	FormResetToken  = "reset_token"
	FormNewPassword = "new_password"
)
