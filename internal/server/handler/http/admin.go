package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunshine-community/memoboard/internal/models"
	"github.com/sunshine-community/memoboard/internal/service"
)

// AdminService defines the interface for admin operations required by the
// HTTP handlers.
type AdminService interface {
	// Dashboard returns the registration gate state and per-user memo counts.
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	// ToggleRegister persists the registration gate state.
	ToggleRegister(ctx context.Context, allow bool) error
	// DeleteUser removes the target user and their memos.
	DeleteUser(ctx context.Context, operatorID, targetID int64) error
}

// AdminHandler handles HTTP requests for the admin endpoints. Every route
// requires the admin role.
type AdminHandler struct {
	// AdminService performs the underlying admin operations.
	AdminService AdminService
}

// Dashboard returns the registration gate state and all users with their
// memo counts, newest user first.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	dashboard, err := h.AdminService.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// ToggleRegister sets whether new registrations are accepted and echoes
// the new state.
func (h *AdminHandler) ToggleRegister(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req struct {
		Allow bool `json:"allow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.AdminService.ToggleRegister(r.Context(), req.Allow); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "state": req.Allow})
}

// DeleteUser removes a user and every memo they own. Admins may not
// delete their own account.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	err = h.AdminService.DeleteUser(r.Context(), claims.ID, targetID)
	switch {
	case errors.Is(err, service.ErrSelfDelete):
		writeError(w, http.StatusBadRequest, "cannot delete your own account")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeSuccess(w)
	}
}
