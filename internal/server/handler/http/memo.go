package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/middleware"
	"github.com/sunshine-community/memoboard/internal/models"
	"github.com/sunshine-community/memoboard/internal/service"
)

// MemoService defines the interface for memo operations required by the
// HTTP handlers.
type MemoService interface {
	// List returns memos visible to the caller; claims may be nil.
	List(ctx context.Context, claims *auth.Claims, query string) ([]models.MemoView, error)
	// Create posts a new memo owned by the caller.
	Create(ctx context.Context, claims *auth.Claims, content string, isPrivate bool) error
	// Update replaces a memo's content, re-deriving tags.
	Update(ctx context.Context, claims *auth.Claims, id int64, content string) error
	// Delete removes a memo.
	Delete(ctx context.Context, claims *auth.Claims, id int64) error
}

// MemoHandler handles HTTP requests for listing and mutating memos.
type MemoHandler struct {
	// MemoService performs the underlying memo operations.
	MemoService MemoService
}

// memoRequest represents the JSON payload for creating or updating a memo.
type memoRequest struct {
	Content   string `json:"content"`
	IsPrivate bool   `json:"is_private"`
}

// List returns the memos visible to the caller, newest first, optionally
// filtered by the q query parameter. Anonymous callers see only public
// memos.
func (h *MemoHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	memos, err := h.MemoService.List(r.Context(), claims, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, memos)
}

// Create posts a new memo owned by the caller.
func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req memoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "content is empty")
		return
	}

	err := h.MemoService.Create(r.Context(), claims, req.Content, req.IsPrivate)
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "content is empty")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeSuccess(w)
	}
}

// Update replaces a memo's content. Only the owner or an admin may update
// a memo; visibility and ownership never change.
func (h *MemoHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	id, err := memoID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "memo not found")
		return
	}

	var req memoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "content is empty")
		return
	}

	h.finish(w, h.MemoService.Update(r.Context(), claims, id, req.Content))
}

// Delete removes a memo. Only the owner or an admin may delete a memo.
func (h *MemoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	id, err := memoID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "memo not found")
		return
	}

	h.finish(w, h.MemoService.Delete(r.Context(), claims, id))
}

// finish maps a memo mutation result to its response.
func (h *MemoHandler) finish(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "memo not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "permission denied")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeSuccess(w)
	}
}

// memoID parses the memo id path parameter. An unparsable id behaves
// like a memo that does not exist.
func memoID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
