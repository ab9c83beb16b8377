// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Supported values of [App.AuthType].
const (
	// AuthTypeBasic authenticates only through the Basic "Authorization" header.
	AuthTypeBasic = "basic_auth"

	// AuthTypeSession authenticates only through the session cookie; sessions
	// never expire.
	AuthTypeSession = "session_auth"

	// AuthTypeSessionExp authenticates through the session cookie; sessions
	// expire after [App.SessionDuration].
	AuthTypeSessionExp = "session_exp_auth"

	// AuthTypeSessionDB is like AuthTypeSessionExp but requires sessions to be
	// persisted in the database.
	AuthTypeSessionDB = "session_db_auth"
)

// StructuredConfig is the top-level configuration container for the
// go-session-auth server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds authentication settings: strategy, session cookie and
	// lifetime, excluded paths and hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the authentication settings.
type App struct {
	// AuthType selects which identity proofs are accepted. Empty means the
	// Basic header is tried first, then the session cookie.
	// Env: APP_AUTH_TYPE
	AuthType string `env:"AUTH_TYPE"`

	// SessionName is the name of the cookie carrying the session token.
	// Env: APP_SESSION_NAME
	SessionName string `env:"SESSION_NAME"`

	// SessionDuration is the session lifetime. Zero means sessions never
	// expire.
	// Env: APP_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// ExcludedPaths lists the path rules that skip authentication. A rule
	// ending with "*" is a prefix wildcard.
	// Env: APP_EXCLUDED_PATHS (comma separated)
	ExcludedPaths []string `env:"EXCLUDED_PATHS" envSeparator:","`

	// BcryptCost is the bcrypt work factor used for password hashing.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. postgres:// selects PostgreSQL,
	// file:, sqlite:// or a *.db path select SQLite, and an empty DSN keeps
	// users and sessions in memory.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionSweepInterval is how often expired sessions are purged from
	// storage. The sweeper only runs when sessions expire.
	// Env: WORKERS_SESSION_SWEEP_INTERVAL
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (the first
// source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
