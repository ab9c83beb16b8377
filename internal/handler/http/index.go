package http

import (
	"net/http"

	"github.com/MKhiriev/go-session-auth/internal/utils"
	"github.com/MKhiriev/go-session-auth/models"
)

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.StatusResponse{Status: "OK"}, http.StatusOK)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.CountUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatsResponse{Users: users}, http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}

// unauthorized and forbidden exist so clients can exercise the error
// envelopes without crafting bad credentials.
func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
}

func (h *Handler) forbidden(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, msgForbidden, http.StatusForbidden)
}
