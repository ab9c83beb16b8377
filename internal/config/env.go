// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment following the env and
// envPrefix tags, e.g. APP_SESSION_DURATION or STORAGE_DB_DATABASE_URI.
// Unset variables leave their fields zero so later sources can fill them.
func parseEnv(cfg *StructuredConfig) error {
	opts := env.Options{
		// APP_EXCLUDED_PATHS="" means "not configured", not "no exclusions".
		Environment: nonEmptyEnviron(),
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env config: %w", err)
	}
	return nil
}

func nonEmptyEnviron() map[string]string {
	vars := env.ToMap(os.Environ())
	for k, v := range vars {
		if v == "" {
			delete(vars, k)
		}
	}
	return vars
}
