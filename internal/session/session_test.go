package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDisabledStoreValidatesEverything(t *testing.T) {
	s, err := NewStore(false)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if !s.Validate(r) {
		t.Error("disabled gate must validate requests without a cookie")
	}
}

func TestIssueAndValidate(t *testing.T) {
	s, err := NewStore(true)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	// No cookie — rejected.
	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if s.Validate(r) {
		t.Error("request without cookie validated")
	}

	// Issue a cookie and replay it.
	w := httptest.NewRecorder()
	s.Issue(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookie count: got %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("cookie name: got %q, want %q", c.Name, CookieName)
	}
	if !c.HttpOnly {
		t.Error("cookie must be httponly")
	}
	if c.MaxAge != int(CookieMaxAge.Seconds()) {
		t.Errorf("cookie max-age: got %d, want %d", c.MaxAge, int(CookieMaxAge.Seconds()))
	}

	r2 := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r2.AddCookie(c)
	if !s.Validate(r2) {
		t.Error("request with issued cookie rejected")
	}
}

func TestWrongTokenRejected(t *testing.T) {
	s, err := NewStore(true)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	if s.Validate(r) {
		t.Error("forged token validated")
	}
}

func TestTokensDifferPerProcess(t *testing.T) {
	a, err := NewStore(true)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	b, err := NewStore(true)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	// A cookie issued by one store is useless against another, which is
	// what invalidates all sessions across restarts.
	w := httptest.NewRecorder()
	a.Issue(w)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	if b.Validate(r) {
		t.Error("token from another store instance validated")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	s, err := NewStore(true)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	w := httptest.NewRecorder()
	s.Clear(w)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookie count: got %d, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("cleared cookie max-age: got %d, want -1", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("cleared cookie value: got %q, want empty", cookies[0].Value)
	}
}
