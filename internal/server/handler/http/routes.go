package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sunshine-community/memoboard/internal/middleware"
	"github.com/sunshine-community/memoboard/internal/web"
)

// NewRouter constructs and returns an HTTP handler that serves the memo
// board API and its embedded single-page client.
//
// Parameters:
//
//	authHandler  - handler for registration, login, and identity endpoints
//	memoHandler  - handler for memo listing and mutation endpoints
//	adminHandler - handler for the admin endpoints
//	tokens       - verifier used to attach bearer identities
//	logger       - structured logger for request logging middleware
//
// Routes:
//
//	GET    /                          → embedded client page
//	POST   /api/auth/register         → authHandler.Register
//	POST   /api/auth/login            → authHandler.Login
//	GET    /api/auth/me               → authHandler.Me
//	GET    /api/memos                 → memoHandler.List
//	POST   /api/memos                 → memoHandler.Create
//	PUT    /api/memos/{id}            → memoHandler.Update
//	DELETE /api/memos/{id}            → memoHandler.Delete
//	GET    /api/admin/dashboard       → adminHandler.Dashboard
//	POST   /api/admin/toggle-register → adminHandler.ToggleRegister
//	DELETE /api/admin/users/{id}      → adminHandler.DeleteUser
//
// Middleware chain (applied in order):
//  1. CORS                         — permissive cross-origin policy
//  2. WithRequestLogging(logger)   — logs incoming requests
//  3. WithIdentity(tokens)         — best-effort bearer identity attach
func NewRouter(
	authHandler *AuthHandler,
	memoHandler *MemoHandler,
	adminHandler *AdminHandler,
	tokens middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.WithRequestLogging(logger))
	// Attach identity when a valid bearer token is present; never reject here.
	r.Use(middleware.WithIdentity(tokens))

	// Serve the embedded client page
	r.Get("/", web.Index)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/memos", func(r chi.Router) {
			r.Get("/", memoHandler.List)
			r.Post("/", memoHandler.Create)
			r.Put("/{id}", memoHandler.Update)
			r.Delete("/{id}", memoHandler.Delete)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", adminHandler.Dashboard)
			r.Post("/toggle-register", adminHandler.ToggleRegister)
			r.Delete("/users/{id}", adminHandler.DeleteUser)
		})
	})

	return r
}
