package handlers

import (
	"log/slog"
	"net/http"

	"promptbox/internal/models"
	"promptbox/internal/store"
)

// Settings handles the configuration singleton.
type Settings struct {
	settings *store.SettingsStore
}

// NewSettings creates the settings handler group.
func NewSettings(settings *store.SettingsStore) *Settings {
	return &Settings{settings: settings}
}

// Get returns the settings row, creating it with defaults when absent.
// GET /api/settings
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get()
	if err != nil {
		slog.Error("get settings", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载设置失败")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update overwrites every settings field.
// PUT /api/settings
func (h *Settings) Update(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if !decodeJSON(w, r, &in) {
		return
	}

	if in.OpenAIBaseURL == "" {
		in.OpenAIBaseURL = models.DefaultBaseURL
	}
	if in.OpenAIModel == "" {
		in.OpenAIModel = models.DefaultModel
	}
	if in.Provider == "" {
		in.Provider = "openai"
	}
	if in.OptimizePromptTemplate == "" {
		in.OptimizePromptTemplate = models.DefaultOptimizeTemplate
	}

	updated, err := h.settings.Update(&in)
	if err != nil {
		slog.Error("update settings", "error", err)
		writeDetail(w, http.StatusInternalServerError, "保存设置失败")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
