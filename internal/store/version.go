package store

import (
	"database/sql"
	"fmt"

	"promptbox/internal/models"
)

// VersionStore manages immutable prompt versions in the database.
type VersionStore struct {
	db *sql.DB
}

// NewVersionStore returns a new VersionStore.
func NewVersionStore(db *sql.DB) *VersionStore {
	return &VersionStore{db: db}
}

const versionColumns = `id, project_id, version_num, content, negative_prompt, parameters, changelog, created_at`

// scanVersion scans a row into a Version struct.
func scanVersion(scanner interface{ Scan(...any) error }) (*models.Version, error) {
	var v models.Version
	err := scanner.Scan(
		&v.ID, &v.ProjectID, &v.VersionNum, &v.Content,
		&v.NegativePrompt, &v.Parameters, &v.Changelog, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if v.Parameters == nil {
		v.Parameters = models.ParamMap{}
	}
	return &v, nil
}

// ListByProject returns a project's versions ordered by version_num
// descending, newest first.
func (s *VersionStore) ListByProject(projectID int64) ([]models.Version, error) {
	rows, err := s.db.Query(
		`SELECT `+versionColumns+` FROM versions WHERE project_id = ? ORDER BY version_num DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var items []models.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

// Create inserts a new version for the given project. The version number is
// the count of existing versions plus one, assigned inside the same
// transaction that bumps the project's updated_at. Returns nil if the
// project does not exist.
func (s *VersionStore) Create(projectID int64, v *models.Version) (*models.Version, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM projects WHERE id = ?`, projectID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check project: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM versions WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count versions: %w", err)
	}

	ts := now()
	res, err := tx.Exec(`
		INSERT INTO versions (project_id, version_num, content, negative_prompt, parameters, changelog, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, projectID, count+1, v.Content, v.NegativePrompt, v.Parameters, v.Changelog, ts)
	if err != nil {
		return nil, fmt.Errorf("create version: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create version id: %w", err)
	}

	// A new version counts as a project mutation.
	if _, err := tx.Exec(`UPDATE projects SET updated_at = ? WHERE id = ?`, ts, projectID); err != nil {
		return nil, fmt.Errorf("touch project: %w", err)
	}

	row := tx.QueryRow(`SELECT `+versionColumns+` FROM versions WHERE id = ?`, id)
	created, err := scanVersion(row)
	if err != nil {
		return nil, fmt.Errorf("reload version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit version: %w", err)
	}
	return created, nil
}
