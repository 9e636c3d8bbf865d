// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// SQLite database file
	DBPath string

	// Directory holding the prebuilt SPA bundle
	StaticDir string

	// Shared access password. Empty means the auth gate is disabled.
	Password string
}

// dataMount is checked at startup: when a /data volume is mounted the
// database file lives there so it survives container rebuilds.
const dataMount = "/data"

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present.
func Load() (*Config, error) {
	// Best effort — a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Host:      envOrDefault("PROMPTBOX_HOST", "0.0.0.0"),
		Port:      envOrDefault("PROMPTBOX_PORT", "8080"),
		Env:       envOrDefault("PROMPTBOX_ENV", "development"),
		DBPath:    envOrDefault("PROMPTBOX_DB_PATH", defaultDBPath()),
		StaticDir: envOrDefault("PROMPTBOX_STATIC_DIR", "static"),
	}

	password, err := loadPassword()
	if err != nil {
		return nil, err
	}
	cfg.Password = password

	return cfg, nil
}

// defaultDBPath returns the SQLite file location. When a /data volume is
// mounted the database is kept there; otherwise it sits next to the binary.
func defaultDBPath() string {
	if info, err := os.Stat(dataMount); err == nil && info.IsDir() {
		return dataMount + "/promptbox.db"
	}
	return "promptbox.db"
}

// loadPassword resolves the shared access password. A mounted secret file
// (PROMPTBOX_PASSWORD_FILE) takes precedence over the plain environment
// variable. An empty result disables the auth gate.
func loadPassword() (string, error) {
	if path := os.Getenv("PROMPTBOX_PASSWORD_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read password file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return os.Getenv("PROMPTBOX_PASSWORD"), nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AuthEnabled reports whether the shared-password gate is active.
func (c *Config) AuthEnabled() bool {
	return c.Password != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
