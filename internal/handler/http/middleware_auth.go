package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/service"
	"github.com/MKhiriev/go-session-auth/internal/utils"
)

// publicEndpoints are method-qualified routes that skip the gate whatever
// the excluded path rules say. Registration shares its path with the
// protected user listing.
var publicEndpoints = map[string]struct{}{
	http.MethodPost + " /api/v1/users": {},
}

func isPublicEndpoint(r *http.Request) bool {
	path := r.URL.Path
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	_, ok := publicEndpoints[r.Method+" "+path]
	return ok
}

// withAuth is the authentication gate applied to every request.
//
// Public endpoints and paths for which [service.AuthService.RequiresAuth]
// is false pass through untouched. Otherwise:
//   - a request carrying no proof at all is rejected with 401;
//   - a request whose proof resolves to no user is rejected with 403;
//   - a storage failure during resolution yields 500.
//
// On success the resolved user is stored in the request context under
// [utils.CurrentUserCtxKey].
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		authService := h.services.AuthService

		if isPublicEndpoint(r) || !authService.RequiresAuth(r.URL.Path) {
			h.metrics.AuthDecisions.WithLabelValues(authOutcomePublic).Inc()
			next.ServeHTTP(w, r)
			return
		}

		if !authService.HasCredentials(r) {
			log.Debug().Str("path", r.URL.Path).Msg("request without credentials")
			h.metrics.AuthDecisions.WithLabelValues(authOutcomeUnauthorized).Inc()
			utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := authService.ResolveIdentity(ctx, r)
		if errors.Is(err, service.ErrNoIdentity) {
			log.Debug().Str("path", r.URL.Path).Msg("credentials do not identify a user")
			h.metrics.AuthDecisions.WithLabelValues(authOutcomeForbidden).Inc()
			utils.WriteError(w, msgForbidden, http.StatusForbidden)
			return
		}
		if err != nil {
			log.Err(err).Msg("error occurred during identity resolution")
			h.metrics.AuthDecisions.WithLabelValues(authOutcomeError).Inc()
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		h.metrics.AuthDecisions.WithLabelValues(authOutcomeAuthenticated).Inc()
		next.ServeHTTP(w, r.WithContext(utils.WithCurrentUser(ctx, user)))
	})
}
