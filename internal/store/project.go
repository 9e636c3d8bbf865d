// Package store implements the persistence layer as raw-SQL stores over a
// shared *sql.DB. Stores return (nil, nil) for missing rows so handlers can
// translate absence into a 404 without sentinel errors.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"promptbox/internal/models"
)

// ProjectStore manages prompt projects in the database.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore returns a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, name, description, tags, category_id, is_favorite, type, created_at, updated_at`

// scanProject scans a row into a Project struct.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Description, &p.Tags, &p.CategoryID,
		&p.IsFavorite, &p.Type, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = models.StringList{}
	}
	return &p, nil
}

// ProjectFilter narrows the project list. Zero values mean "no filter".
type ProjectFilter struct {
	CategoryID *int64
	Favorite   *bool
	Search     string
}

// List returns projects ordered by updated_at descending, newest first.
// Search matches a case-sensitive substring of the project name, its
// description, or the content of any of its versions.
func (s *ProjectStore) List(f ProjectFilter) ([]models.Project, error) {
	var (
		where []string
		args  []any
	)

	if f.CategoryID != nil {
		where = append(where, `p.category_id = ?`)
		args = append(args, *f.CategoryID)
	}
	if f.Favorite != nil {
		where = append(where, `p.is_favorite = ?`)
		args = append(args, *f.Favorite)
	}
	if f.Search != "" {
		where = append(where, `(instr(p.name, ?) > 0
			OR instr(COALESCE(p.description, ''), ?) > 0
			OR EXISTS (SELECT 1 FROM versions v WHERE v.project_id = p.id AND instr(v.content, ?) > 0))`)
		args = append(args, f.Search, f.Search, f.Search)
	}

	query := `SELECT ` + projectColumns + ` FROM projects p`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY p.updated_at DESC, p.id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by ID. Returns nil if not found.
func (s *ProjectStore) FindByID(id int64) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project and returns it with timestamps set.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	if p.Type == "" {
		p.Type = models.ProjectTypeText
	}
	ts := now()

	res, err := s.db.Exec(`
		INSERT INTO projects (name, description, tags, category_id, is_favorite, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Tags, p.CategoryID, p.IsFavorite, p.Type, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create project id: %w", err)
	}
	return s.FindByID(id)
}

// Update overwrites the project's mutable fields (full overwrite, not a
// partial patch) and refreshes updated_at. The favorite flag is toggled
// separately. Returns the updated project, or nil if it does not exist.
func (s *ProjectStore) Update(p *models.Project) (*models.Project, error) {
	if p.Type == "" {
		p.Type = models.ProjectTypeText
	}

	res, err := s.db.Exec(`
		UPDATE projects SET name = ?, description = ?, tags = ?, category_id = ?, type = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Tags, p.CategoryID, p.Type, now(), p.ID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update project rows: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(p.ID)
}

// ToggleFavorite flips the favorite flag and refreshes updated_at.
// Returns the updated project, or nil if it does not exist.
func (s *ProjectStore) ToggleFavorite(id int64) (*models.Project, error) {
	res, err := s.db.Exec(`
		UPDATE projects SET is_favorite = NOT is_favorite, updated_at = ? WHERE id = ?
	`, now(), id)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("toggle favorite rows: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(id)
}

// Delete removes a project by ID. Its versions are removed with it
// (ON DELETE CASCADE). Reports whether a row was deleted.
func (s *ProjectStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete project rows: %w", err)
	}
	return n > 0, nil
}

// now returns the current UTC time. Variable so tests can pin it.
var now = func() time.Time { return time.Now().UTC() }
