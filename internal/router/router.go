// Package router sets up all HTTP routes and middleware chains for the
// promptbox server. The /api subtree sits behind the shared-session gate;
// everything else falls through to the SPA host.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"promptbox/internal/handlers"
	"promptbox/internal/middleware"
	"promptbox/internal/session"
	"promptbox/internal/spa"
)

// Deps bundles the handler groups and shared services the router wires up.
type Deps struct {
	Sessions   *session.Store
	Auth       *handlers.Auth
	Categories *handlers.Categories
	Projects   *handlers.Projects
	Versions   *handlers.Versions
	Settings   *handlers.Settings
	AI         *handlers.AI
	SPA        *spa.Handler
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Fallback before the subrouters are mounted so they inherit it:
	// real files when they exist, index.html for client-side routes,
	// JSON 404 for unknown API paths.
	r.NotFound(d.SPA.ServeHTTP)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// JSON API — every path except /api/auth/* requires a valid session.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", d.Auth.Login)
			r.Get("/status", d.Auth.Status)
			r.Post("/logout", d.Auth.Logout)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Categories.List)
			r.Post("/", d.Categories.Create)
			// Registered before {id} so it can't be shadowed.
			r.Put("/reorder", d.Categories.Reorder)
			r.Put("/{id}", d.Categories.Update)
			r.Delete("/{id}", d.Categories.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", d.Projects.List)
			r.Post("/", d.Projects.Create)
			r.Get("/{id}", d.Projects.Get)
			r.Put("/{id}", d.Projects.Update)
			r.Delete("/{id}", d.Projects.Delete)
			r.Post("/{id}/favorite", d.Projects.ToggleFavorite)
			r.Post("/{id}/versions", d.Versions.Create)
			r.Get("/{id}/versions", d.Versions.List)
		})

		r.Get("/settings", d.Settings.Get)
		r.Put("/settings", d.Settings.Update)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/optimize", d.AI.Optimize)
			r.Post("/run", d.AI.Run)
			r.Post("/analyze", d.AI.Analyze)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
