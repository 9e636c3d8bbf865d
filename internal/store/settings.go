package store

import (
	"database/sql"
	"fmt"

	"promptbox/internal/models"
)

// SettingsStore manages the application settings singleton (row id = 1).
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore returns a new SettingsStore.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingsColumns = `id, openai_api_key, openai_base_url, openai_model, available_models, provider, optimize_prompt_template`

// scanSettings scans a row into a Settings struct.
func scanSettings(scanner interface{ Scan(...any) error }) (*models.Settings, error) {
	var s models.Settings
	err := scanner.Scan(
		&s.ID, &s.OpenAIAPIKey, &s.OpenAIBaseURL, &s.OpenAIModel,
		&s.AvailableModels, &s.Provider, &s.OptimizePromptTemplate,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns the settings row, creating it with defaults if it is missing.
// The row is normally seeded at startup; the lazy insert covers databases
// created before the seed ran.
func (s *SettingsStore) Get() (*models.Settings, error) {
	row := s.db.QueryRow(`SELECT `+settingsColumns+` FROM settings WHERE id = ?`, models.SettingsID)
	settings, err := scanSettings(row)
	if err == nil {
		return settings, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO settings (id, optimize_prompt_template) VALUES (?, ?)`,
		models.SettingsID, models.DefaultOptimizeTemplate,
	)
	if err != nil {
		return nil, fmt.Errorf("init settings: %w", err)
	}

	row = s.db.QueryRow(`SELECT `+settingsColumns+` FROM settings WHERE id = ?`, models.SettingsID)
	settings, err = scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("reload settings: %w", err)
	}
	return settings, nil
}

// Update overwrites every settings field and returns the stored row.
// The singleton is upserted, never deleted.
func (s *SettingsStore) Update(in *models.Settings) (*models.Settings, error) {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, openai_api_key, openai_base_url, openai_model, available_models, provider, optimize_prompt_template)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			openai_api_key = excluded.openai_api_key,
			openai_base_url = excluded.openai_base_url,
			openai_model = excluded.openai_model,
			available_models = excluded.available_models,
			provider = excluded.provider,
			optimize_prompt_template = excluded.optimize_prompt_template
	`, models.SettingsID, in.OpenAIAPIKey, in.OpenAIBaseURL, in.OpenAIModel,
		in.AvailableModels, in.Provider, in.OptimizePromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	return s.Get()
}
