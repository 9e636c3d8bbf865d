package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"promptbox/internal/session"
)

// Auth handles the shared-password login flow. There are no user accounts:
// one configured password gates the whole API, and every authenticated
// browser shares the process-lifetime session token.
type Auth struct {
	sessions     *session.Store
	passwordHash []byte
}

// NewAuth creates the auth handler group. The configured password is
// hashed once at startup; an empty password disables the gate.
func NewAuth(sessions *session.Store, password string) (*Auth, error) {
	h := &Auth{sessions: sessions}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h.passwordHash = hash
	}
	return h, nil
}

type loginRequest struct {
	Password string `json:"password"`
}

type statusResponse struct {
	AuthRequired  bool `json:"auth_required"`
	Authenticated bool `json:"authenticated"`
}

// Login verifies the shared password and issues the session cookie.
// POST /api/auth/login
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Enabled() {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "密码错误")
		return
	}

	h.sessions.Issue(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Status reports whether a password is required and whether this request
// carries a valid session.
// GET /api/auth/status
func (h *Auth) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		AuthRequired:  h.sessions.Enabled(),
		Authenticated: h.sessions.Validate(r),
	})
}

// Logout clears the session cookie.
// POST /api/auth/logout
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
