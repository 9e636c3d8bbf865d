package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"promptbox/internal/models"
)

// defaultCategories are created on first startup so a fresh install has a
// usable sidebar. Names and colors match the shipped front end.
var defaultCategories = []struct {
	name  string
	color string
}{
	{"创意写作", "magenta"},
	{"代码助手", "blue"},
	{"数据分析", "cyan"},
	{"图像生成", "purple"},
	{"通用", "gold"},
}

// Seed populates the database with initial data: the default categories
// when none exist, and the settings singleton row. It is idempotent and
// runs on every startup.
func Seed(db *sql.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}
	return seedSettings(db)
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, c := range defaultCategories {
		_, err := db.Exec(
			`INSERT INTO categories (name, color, sort_order) VALUES (?, ?, ?)`,
			c.name, c.color, i+1,
		)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
	}

	slog.Info("database seeded with default categories", "count", len(defaultCategories))
	return nil
}

func seedSettings(db *sql.DB) error {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM settings WHERE id = ?`, models.SettingsID).Scan(&count)
	if err != nil {
		return fmt.Errorf("seed check settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = db.Exec(
		`INSERT INTO settings (id, optimize_prompt_template) VALUES (?, ?)`,
		models.SettingsID, models.DefaultOptimizeTemplate,
	)
	if err != nil {
		return fmt.Errorf("seed insert settings: %w", err)
	}

	slog.Info("database seeded with default settings")
	return nil
}
