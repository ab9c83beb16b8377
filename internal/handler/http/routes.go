package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-session-auth/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	router.Use(middleware.StripSlashes)
	router.Use(h.withAuth)

	router.Get("/metrics", h.metrics.Handler().ServeHTTP)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.status)
		r.Get("/stats", h.stats)
		r.Get("/version", h.version)
		r.Get("/unauthorized", h.unauthorized)
		r.Get("/forbidden", h.forbidden)

		r.Post("/users", h.createUser)
		r.Get("/users", h.listUsers)
		r.Get("/users/me", h.me)
		r.Put("/users/me", h.updateUser)
		r.Get("/users/{id}", h.getUser)
		r.Put("/users/{id}", h.updateUser)

		r.Post("/auth_session/login", h.login)
		r.Delete("/auth_session/logout", h.logout)

		r.Post("/reset_password", h.requestPasswordReset)
		r.Put("/reset_password", h.confirmPasswordReset)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, msgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
