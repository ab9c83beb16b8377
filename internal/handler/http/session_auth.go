package http

import (
	"net/http"

	"github.com/MKhiriev/go-session-auth/internal/auth"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/utils"
	"github.com/MKhiriev/go-session-auth/models"
)

// login reads the email and password form fields, opens a session and sets
// the session cookie. The body is the logged in user.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue(models.FormEmail)
	if email == "" {
		utils.WriteError(w, ErrEmailMissing.Error(), http.StatusBadRequest)
		return
	}
	password := r.PostFormValue(models.FormPassword)
	if password == "" {
		utils.WriteError(w, ErrPasswordMissing.Error(), http.StatusBadRequest)
		return
	}

	token, user, err := h.services.AuthService.Login(r.Context(), email, password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token))
	utils.WriteJSON(w, user, http.StatusOK)
}

// logout destroys the session named by the cookie. An unknown or expired
// session yields 404.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	authService := h.services.AuthService

	token := auth.SessionCookie(r, authService.SessionCookieName())
	destroyed, err := authService.Logout(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !destroyed {
		utils.WriteError(w, msgNotFound, http.StatusNotFound)
		return
	}

	log.Info().Msg("session destroyed")
	expired := h.sessionCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	utils.WriteJSON(w, struct{}{}, http.StatusOK)
}

func (h *Handler) sessionCookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.services.AuthService.SessionCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.services.Sessions != nil {
		if ttl := h.services.Sessions.TTL(); ttl > 0 {
			cookie.MaxAge = int(ttl.Seconds())
		}
	}
	return cookie
}
