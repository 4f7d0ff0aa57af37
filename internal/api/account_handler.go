package api

import (
	"log/slog"
	"net/http"

	"github.com/cfarrell/taskman-api/internal/api/shared"
	"github.com/cfarrell/taskman-api/internal/service"
	"github.com/cfarrell/taskman-api/internal/service/auth"
	"github.com/cfarrell/taskman-api/internal/store"
)

// AccountHandler handles authenticated account management requests.
type AccountHandler struct {
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	passwordHasher   auth.PasswordHasher
	logger           *slog.Logger
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(
	userStore store.UserStore,
	passwordVerifier auth.PasswordVerifier,
	passwordHasher auth.PasswordHasher,
	log *slog.Logger,
) *AccountHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AccountHandler{
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		passwordHasher:   passwordHasher,
		logger:           log.With(slog.String("component", "account_handler")),
	}
}

// CurrentUser handles GET /api/account/current-user.
// Password fields never serialize; the User JSON tags exclude them.
func (h *AccountHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ChangePassword handles POST /api/account/change-password.
// The current password must verify and the confirmation must match before
// the new password is hashed and stored; both violations are reported
// together as field errors.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	verr := service.NewValidationError()
	if h.passwordVerifier.Compare(user.HashedPassword, req.CurrentPassword) != nil {
		verr.Add("currentPassword", "Current password is incorrect")
	}
	if req.NewPassword != req.ConfirmPassword {
		verr.Add("confirmPassword", "New password and confirmation password do not match")
	}
	if verr.HasErrors() {
		respondValidationError(w, r, verr)
		return
	}

	hashed, err := h.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash new password", "error", err, "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if err := h.userStore.UpdatePassword(r.Context(), userID, hashed); err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.logger.Info("password changed", "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}
