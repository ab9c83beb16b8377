package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Default configuration values.
const (
	DefaultSessionName          = "_my_session_id"
	DefaultHTTPAddress          = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultSessionSweepInterval = time.Minute
	DefaultBcryptCost           = bcrypt.DefaultCost
)

// DefaultExcludedPaths returns the path rules that skip authentication when
// none are configured.
func DefaultExcludedPaths() []string {
	return []string{
		"/api/v1/status/",
		"/api/v1/unauthorized/",
		"/api/v1/forbidden/",
		"/api/v1/auth_session/login/",
		"/api/v1/reset_password/",
		"/metrics/",
	}
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionName:   DefaultSessionName,
			ExcludedPaths: DefaultExcludedPaths(),
			BcryptCost:    DefaultBcryptCost,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SessionSweepInterval: DefaultSessionSweepInterval,
		},
	}
}
