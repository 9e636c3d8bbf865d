// Package main is the entry point for the promptbox server. It loads
// configuration, opens the database, sets up routing, and starts the HTTP
// server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promptbox/internal/config"
	"promptbox/internal/database"
	"promptbox/internal/handlers"
	"promptbox/internal/router"
	"promptbox/internal/session"
	"promptbox/internal/spa"
	"promptbox/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db", cfg.DBPath,
		"auth", cfg.AuthEnabled(),
	)

	// Open the SQLite database.
	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed default categories and the settings row (no-op once present).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// The session token lives for the process lifetime; restarting the
	// server logs every browser out.
	sessions, err := session.NewStore(cfg.AuthEnabled())
	if err != nil {
		slog.Error("failed to initialize sessions", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	projectStore := store.NewProjectStore(db)
	versionStore := store.NewVersionStore(db)
	settingsStore := store.NewSettingsStore(db)

	// Create handler groups with their dependencies.
	authHandlers, err := handlers.NewAuth(sessions, cfg.Password)
	if err != nil {
		slog.Error("failed to initialize auth", "error", err)
		os.Exit(1)
	}

	r := router.New(router.Deps{
		Sessions:   sessions,
		Auth:       authHandlers,
		Categories: handlers.NewCategories(categoryStore),
		Projects:   handlers.NewProjects(projectStore),
		Versions:   handlers.NewVersions(versionStore),
		Settings:   handlers.NewSettings(settingsStore),
		AI:         handlers.NewAI(settingsStore),
		SPA:        spa.New(cfg.StaticDir),
	})

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate AI endpoints that wait on LLM responses
	// (typically 10-30s, up to 60s for image generation).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
