package middleware

import (
	"net/http"
	"strings"

	"promptbox/internal/session"
)

// RequireSession guards the API behind the shared session cookie. Every
// /api path except the /api/auth subtree needs a valid session; the gate is
// a no-op when no password is configured. Must wrap only API routes — the
// SPA and health check stay public.
func RequireSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/auth/") {
				next.ServeHTTP(w, r)
				return
			}

			if !store.Validate(r) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"未登录"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
