package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"promptbox/internal/ai"
	"promptbox/internal/models"
	"promptbox/internal/store"
)

// AI handles the provider passthrough endpoints. The client is built per
// request from the settings row so key, base URL, and model changes take
// effect without a restart.
type AI struct {
	settings *store.SettingsStore
}

// NewAI creates the AI handler group.
func NewAI(settings *store.SettingsStore) *AI {
	return &AI{settings: settings}
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type optimizeResponse struct {
	OptimizedPrompt string `json:"optimized_prompt"`
}

type runRequest struct {
	Prompt         string          `json:"prompt"`
	NegativePrompt *string         `json:"negative_prompt"`
	Parameters     models.ParamMap `json:"parameters"`
	Type           string          `json:"type"`
	Model          string          `json:"model"`
}

type runResponse struct {
	Result string `json:"result"`
}

// Optimize rewrites the prompt through the provider using the stored
// system template.
// POST /api/ai/optimize
func (h *AI) Optimize(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeDetail(w, http.StatusBadRequest, "Prompt 不能为空")
		return
	}

	settings, client, ok := h.client(w)
	if !ok {
		return
	}

	result, err := client.Optimize(r.Context(), req.Prompt, settings.OptimizePromptTemplate)
	if err != nil {
		slog.Error("ai optimize failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "AI 调用失败: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, optimizeResponse{OptimizedPrompt: result})
}

// Run executes the prompt: a chat completion for text projects, an image
// generation (returning the hosted URL) for image projects.
// POST /api/ai/run
func (h *AI) Run(w http.ResponseWriter, r *http.Request) {
	req := runRequest{Type: models.ProjectTypeText}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeDetail(w, http.StatusBadRequest, "Prompt 不能为空")
		return
	}

	_, client, ok := h.client(w)
	if !ok {
		return
	}

	result, err := client.Run(r.Context(), ai.RunInput{
		Prompt:     req.Prompt,
		Parameters: req.Parameters,
		Kind:       req.Type,
		Model:      req.Model,
	})
	if errors.Is(err, ai.ErrUnsupportedKind) {
		writeDetail(w, http.StatusBadRequest, "不支持的任务类型")
		return
	}
	if err != nil {
		slog.Error("ai run failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "执行失败: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runResponse{Result: result})
}

// Analyze extracts metadata from the prompt. Provider failures degrade to
// the static fallback payload instead of an error status.
// POST /api/ai/analyze
func (h *AI) Analyze(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeDetail(w, http.StatusBadRequest, "Prompt 不能为空")
		return
	}

	_, client, ok := h.client(w)
	if !ok {
		return
	}

	result, err := client.Analyze(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("ai analyze failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "AI 调用失败: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// client loads the settings row and builds a provider client from it. A
// missing API key is a configuration error, reported as 400 before any
// upstream call is attempted.
func (h *AI) client(w http.ResponseWriter) (*models.Settings, *ai.Client, bool) {
	settings, err := h.settings.Get()
	if err != nil {
		slog.Error("load settings", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载设置失败")
		return nil, nil, false
	}
	if settings.APIKey() == "" {
		writeDetail(w, http.StatusBadRequest, "请先在设置中配置 API Key")
		return nil, nil, false
	}
	return settings, ai.New(settings), true
}
