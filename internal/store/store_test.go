// store_test.go provides a shared test database helper for all store tests.
// Each test gets its own SQLite file in a temp dir, created through the
// real goose migrations.
package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"

	"promptbox/internal/database"
	"promptbox/internal/models"
)

// testDB opens a fresh database in the test's temp directory and runs
// migrations. The connection is closed when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "promptbox_test.db")
	db, err := database.Connect(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate test db: %v", err)
	}

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// mustCreateCategory inserts a category and fails the test on error.
func mustCreateCategory(t *testing.T, s *CategoryStore, name string) *models.Category {
	t.Helper()
	c, err := s.Create(&models.Category{Name: name, Color: "blue"})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

// mustCreateProject inserts a project and fails the test on error.
func mustCreateProject(t *testing.T, s *ProjectStore, name string) *models.Project {
	t.Helper()
	p, err := s.Create(&models.Project{Name: name})
	if err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	return p
}

// strPtr returns a pointer to s.
func strPtr(s string) *string { return &s }
