// Package session manages the shared login session. One random token is
// generated per process; every authenticated browser holds the same token
// in a cookie, and restarting the server invalidates all sessions.
package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "promptbox_auth"

	// CookieMaxAge is the cookie lifetime. The token itself has no expiry
	// beyond this and the process lifetime.
	CookieMaxAge = 30 * 24 * time.Hour

	// tokenLength is the byte length of the random token (32 bytes = 64 hex chars).
	tokenLength = 32
)

// Store holds the process-lifetime session token. The token is read-only
// after construction, so methods are safe for concurrent use.
type Store struct {
	token   string
	enabled bool
}

// NewStore generates the session token. When enabled is false (no password
// configured) the auth gate is a no-op and every request is authenticated.
func NewStore(enabled bool) (*Store, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("session token: %w", err)
	}
	return &Store{token: token, enabled: enabled}, nil
}

// Enabled reports whether the auth gate is active.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Issue sets the session cookie on the response after a successful login.
func (s *Store) Issue(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(CookieMaxAge.Seconds()),
	})
}

// Validate reports whether the request carries a valid session cookie.
// Always true when the gate is disabled.
func (s *Store) Validate(r *http.Request) bool {
	if !s.enabled {
		return true
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(s.token)) == 1
}

// Clear expires the session cookie immediately.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateToken creates a cryptographically random session token.
func generateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
