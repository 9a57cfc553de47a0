// Package middleware provides HTTP middlewares for identity attachment,
// request logging, and cross-origin access.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sunshine-community/memoboard/internal/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier verifies a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// WithIdentity attaches verified session claims to the request context.
//
// If an Authorization header carries a token that verifies, the resulting
// claims become the request's identity. On any verification failure, or
// when the header is absent, the request proceeds with no identity.
// Whether an unauthenticated request is acceptable is decided by the
// route handlers, never here.
func WithIdentity(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := tokens.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the session claims attached by WithIdentity.
// The second return value is false when the request is anonymous.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// ContextWithClaims returns a context carrying the given claims.
// Used by handler tests to simulate an authenticated request.
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
