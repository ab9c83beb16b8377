// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth decides which requests need authentication and extracts the
// identity proof a request carries. It holds no state and knows nothing
// about users or sessions.
package auth

import "strings"

const (
	pathSeparator  = "/"
	wildcardMarker = "*"
)

// RequiresAuth reports whether path must be authenticated given the ordered
// excluded rules.
//
// An empty path or an empty rule set fails closed. A rule ending with "*"
// matches when the rule without the marker is a prefix of the raw path, so
// "/api/v1/foo*" matches both "/api/v1/foobar" and "/api/v1/foo/". Any other
// rule must equal the path normalized with a trailing "/", so
// "/api/v1/status" and "/api/v1/status/" both match "/api/v1/status/".
func RequiresAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}

	normalized := path
	if !strings.HasSuffix(normalized, pathSeparator) {
		normalized += pathSeparator
	}

	for _, rule := range excluded {
		if rule == "" {
			continue
		}

		if prefix, ok := strings.CutSuffix(rule, wildcardMarker); ok {
			if strings.HasPrefix(path, prefix) {
				return false
			}
			continue
		}

		if normalized == rule {
			return false
		}
	}

	return true
}
