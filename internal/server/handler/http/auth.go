package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sunshine-community/memoboard/internal/models"
	"github.com/sunshine-community/memoboard/internal/service"
)

// UserService defines the interface for registration and login operations
// required by the HTTP handlers.
type UserService interface {
	// Register creates a new account. See service.UserService.Register.
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials and returns the matching user.
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	// Issue returns a signed session token for the given identity.
	Issue(id int64, username, role string) (string, error)
}

// AuthHandler handles HTTP requests for registration, login, and the
// current-identity endpoint.
type AuthHandler struct {
	// UserService performs the underlying account operations.
	UserService UserService
	// Tokens signs session tokens on login.
	Tokens TokenIssuer
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles user registration requests.
// It expects a JSON body with non-empty "username" and "password" fields.
// The first registered account becomes the admin.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	err := h.UserService.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrRegistrationClosed):
		writeError(w, http.StatusForbidden, "registration is closed")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "username already exists")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "registration failed")
	default:
		writeSuccess(w)
	}
}

// Login handles login requests. On success it returns a session token and
// the user's public summary. Unknown username and wrong password produce
// the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrBadCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Me returns the claims attached to the request's session token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": claims})
}
