// Package router sets up the HTTP routes and middleware chains for the
// blog API. Reads are public; every mutation except commenting sits
// behind the bearer-token gate.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"inkpress/internal/auth"
	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.Auth
	Articles   *handlers.Articles
	Categories *handlers.Categories
	Comments   *handlers.Comments
	Uploads    *handlers.Uploads
}

// New creates the configured Chi router with all middleware and route
// groups wired up. loginLimiter throttles the credential endpoints.
func New(h Handlers, tokens *auth.TokenManager, loginLimiter *middleware.RateLimiter, corsOrigins []string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints. Register and login are throttled per client IP.
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/register", h.Auth.Register)
			r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)
			r.Get("/check-admin", h.Auth.CheckAdmin)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/verify", h.Auth.Verify)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Post("/2fa/setup", h.Auth.TwoFASetup)
				r.Post("/2fa/enable", h.Auth.TwoFAEnable)
				r.Post("/2fa/disable", h.Auth.TwoFADisable)
			})
		})

		// Articles. Reads, likes, and commenting are public.
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.Articles.List)
			r.Get("/{id}", h.Articles.Get)
			r.Post("/{id}/like", h.Articles.Like)
			r.Post("/{id}/comments", h.Comments.Add)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Post("/", h.Articles.Create)
				r.Put("/{id}", h.Articles.Update)
				r.Delete("/{id}", h.Articles.Delete)
				r.Delete("/{id}/comments/{commentId}", h.Comments.Delete)
			})
		})

		// Categories. Reads are public, mutations are admin-only.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Get("/{id}", h.Categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Post("/", h.Categories.Create)
				r.Put("/{id}", h.Categories.Update)
				r.Delete("/{id}", h.Categories.Delete)
			})
		})

		// Image upload — admin only.
		r.With(middleware.RequireAuth(tokens)).Post("/upload/image", h.Uploads.Upload)
	})

	// Uploaded files are served straight from disk.
	r.Get("/uploads/{filename}", h.Uploads.Serve)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
