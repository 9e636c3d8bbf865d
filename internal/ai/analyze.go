package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"promptbox/internal/models"
)

// analyzeSystemPrompt asks the model for machine-readable metadata. The
// strict-JSON instruction keeps most models from wrapping the object in
// prose, and stripCodeFence handles the ones that fence it anyway.
const analyzeSystemPrompt = `你是一个提示词分析助手。分析用户提供的 Prompt，提取元数据。
只输出一个 JSON 对象，不要输出任何其他文字，格式如下：
{"name": "简短名称", "description": "一句话描述", "tags": ["标签1", "标签2"], "type": "text 或 image", "category": "创意写作/代码助手/数据分析/图像生成/通用 之一"}`

// AnalyzeResult is the metadata extracted from a prompt. Fields mirror the
// project creation form so the UI can prefill it.
type AnalyzeResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
}

// fallbackResult is returned whenever the provider call or the JSON parse
// fails, so the caller always receives a well-formed object.
func fallbackResult() *AnalyzeResult {
	return &AnalyzeResult{
		Tags:     []string{},
		Type:     models.ProjectTypeText,
		Category: "通用",
	}
}

// Analyze asks the provider to extract metadata from the prompt. Provider
// and parse failures are swallowed: the method logs them and returns the
// static fallback instead of an error. Only a missing API key is surfaced.
func (c *Client) Analyze(ctx context.Context, prompt string) (*AnalyzeResult, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	raw, err := c.doChat(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: analyzeSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: defaultTemperature,
	})
	if err != nil {
		slog.Error("ai analyze failed", "error", err)
		return fallbackResult(), nil
	}

	var result AnalyzeResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		slog.Error("ai analyze parse failed", "error", err, "raw", raw)
		return fallbackResult(), nil
	}

	if result.Tags == nil {
		result.Tags = []string{}
	}
	if result.Type != models.ProjectTypeText && result.Type != models.ProjectTypeImage {
		result.Type = models.ProjectTypeText
	}
	if result.Category == "" {
		result.Category = "通用"
	}
	return &result, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or without
// a language tag, from a model response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
