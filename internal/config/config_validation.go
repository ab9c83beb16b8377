// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// validate checks that the final merged [StructuredConfig] is usable at
// startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.AuthType {
	case "", AuthTypeBasic, AuthTypeSession, AuthTypeSessionExp, AuthTypeSessionDB:
	default:
		return fmt.Errorf("%w: unknown auth type %q", ErrInvalidAppConfigs, cfg.App.AuthType)
	}

	if cfg.App.SessionDuration < 0 {
		return fmt.Errorf("%w: negative session duration", ErrInvalidAppConfigs)
	}

	if cfg.App.AuthType == AuthTypeSessionDB && cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: %s requires a database DSN", ErrInvalidStorageConfigs, AuthTypeSessionDB)
	}

	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SessionSweepInterval < 0 {
		return fmt.Errorf("%w: negative session sweep interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

// EffectiveSessionDuration returns the session lifetime implied by the auth
// type: plain session auth never expires, the other strategies use
// SessionDuration as is.
func (cfg *StructuredConfig) EffectiveSessionDuration() time.Duration {
	if cfg.App.AuthType == AuthTypeSession {
		return 0
	}
	return cfg.App.SessionDuration
}
