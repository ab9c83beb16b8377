package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/utils"
	"github.com/MKhiriev/go-session-auth/models"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrWrongFormat.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case req.Email == "":
		utils.WriteError(w, ErrEmailMissing.Error(), http.StatusBadRequest)
		return
	case req.Password == "":
		utils.WriteError(w, ErrPasswordMissing.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, user, http.StatusCreated)
}

// me returns the user resolved by the authentication gate.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, msgNotFound, http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// updateUser changes the caller's own first and last name. The id "me"
// names the caller; any other user's id is forbidden.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	caller, ok := utils.CurrentUserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, msgForbidden, http.StatusForbidden)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || id == meUserID {
		id = caller.ID
	}
	if id != caller.ID {
		utils.WriteError(w, msgForbidden, http.StatusForbidden)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrWrongFormat.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("user updated")
	utils.WriteJSON(w, user, http.StatusOK)
}
