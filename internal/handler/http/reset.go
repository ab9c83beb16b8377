package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-session-auth/internal/service"
	"github.com/MKhiriev/go-session-auth/internal/utils"
	"github.com/MKhiriev/go-session-auth/models"
)

// requestPasswordReset issues a reset token for the email form field.
// Tokens are returned in the body because e-mail delivery is out of scope.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue(models.FormEmail)
	if email == "" {
		utils.WriteError(w, ErrEmailMissing.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.RequestPasswordReset(r.Context(), email)
	if errors.Is(err, service.ErrNotFound) {
		utils.WriteError(w, msgForbidden, http.StatusForbidden)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ResetPasswordResponse{Email: email, ResetToken: token}, http.StatusOK)
}

func (h *Handler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	token := r.PostFormValue(models.FormResetToken)
	if token == "" {
		utils.WriteError(w, ErrResetTokenMissing.Error(), http.StatusBadRequest)
		return
	}
	newPassword := r.PostFormValue(models.FormNewPassword)
	if newPassword == "" {
		utils.WriteError(w, ErrNewPasswordMissing.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ConfirmPasswordReset(r.Context(), token, newPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ResetPasswordResponse{Message: "Password updated"}, http.StatusOK)
}
