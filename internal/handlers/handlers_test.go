package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"promptbox/internal/database"
	"promptbox/internal/handlers"
	"promptbox/internal/models"
	"promptbox/internal/router"
	"promptbox/internal/session"
	"promptbox/internal/spa"
	"promptbox/internal/store"
)

// env is a full API stack over a fresh seeded database, routed exactly as
// in production.
type env struct {
	db       *sql.DB
	handler  http.Handler
	settings *store.SettingsStore
	projects *store.ProjectStore
}

// newEnv builds the stack. An empty password leaves the auth gate off so
// resource tests don't need to log in first.
func newEnv(t *testing.T, password string) *env {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sessions, err := session.NewStore(password != "")
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	auth, err := handlers.NewAuth(sessions, password)
	if err != nil {
		t.Fatalf("auth handler: %v", err)
	}

	settings := store.NewSettingsStore(db)
	projects := store.NewProjectStore(db)

	h := router.New(router.Deps{
		Sessions:   sessions,
		Auth:       auth,
		Categories: handlers.NewCategories(store.NewCategoryStore(db)),
		Projects:   handlers.NewProjects(projects),
		Versions:   handlers.NewVersions(store.NewVersionStore(db)),
		Settings:   handlers.NewSettings(settings),
		AI:         handlers.NewAI(settings),
		SPA:        spa.New(t.TempDir()),
	})

	return &env{db: db, handler: h, settings: settings, projects: projects}
}

// do runs a request through the router and returns the recorder. A non-nil
// body is JSON-encoded.
func (e *env) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)
	return w
}

// decode unmarshals the response body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// detail extracts the error message from a {"detail": ...} payload.
func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	decode(t, w, &payload)
	return payload.Detail
}

// createProject inserts a project through the API and returns it.
func (e *env) createProject(t *testing.T, name string) models.Project {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/projects", map[string]any{"name": name})
	if w.Code != http.StatusOK {
		t.Fatalf("create project: status %d, body %s", w.Code, w.Body.String())
	}
	var p models.Project
	decode(t, w, &p)
	return p
}
