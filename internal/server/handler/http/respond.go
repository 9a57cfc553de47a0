// Package http provides HTTP handlers and routing for the memo board API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/middleware"
	"github.com/sunshine-community/memoboard/internal/models"
)

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform error body {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSuccess writes the uniform success body {"success": true}.
func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// requireClaims returns the request's identity, or writes 401 and
// returns false when the request is anonymous.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return claims, true
}

// requireAdmin returns the request's identity when it carries the admin
// role, writing 401 or 403 otherwise.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return nil, false
	}
	if claims.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin access required")
		return nil, false
	}
	return claims, true
}
