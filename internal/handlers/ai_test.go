package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chatUpstream fakes an OpenAI-compatible chat completions endpoint that
// replies with the given content.
func chatUpstream(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("upstream path: got %q", r.URL.Path)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// configureAI points the stored settings at the fake upstream.
func (e *env) configureAI(t *testing.T, baseURL string) {
	t.Helper()
	w := e.do(t, http.MethodPut, "/api/settings", map[string]any{
		"openai_api_key":  "sk-test",
		"openai_base_url": baseURL,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("configure settings: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestAIOptimize(t *testing.T) {
	e := newEnv(t, "")
	srv := chatUpstream(t, "优化后的提示词")
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/optimize", map[string]any{"prompt": "写一首诗"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		OptimizedPrompt string `json:"optimized_prompt"`
	}
	decode(t, w, &resp)
	if resp.OptimizedPrompt != "优化后的提示词" {
		t.Errorf("optimized prompt: got %q", resp.OptimizedPrompt)
	}
}

func TestAIRequiresAPIKey(t *testing.T) {
	e := newEnv(t, "")

	for _, path := range []string{"/api/ai/optimize", "/api/ai/run", "/api/ai/analyze"} {
		w := e.do(t, http.MethodPost, path, map[string]any{"prompt": "x"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", path, w.Code)
			continue
		}
		if got := detail(t, w); got != "请先在设置中配置 API Key" {
			t.Errorf("%s detail: got %q", path, got)
		}
	}
}

func TestAIRequiresPrompt(t *testing.T) {
	e := newEnv(t, "")

	w := e.do(t, http.MethodPost, "/api/ai/optimize", map[string]any{"prompt": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestAIRunText(t *testing.T) {
	e := newEnv(t, "")
	srv := chatUpstream(t, "生成的结果")
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/run", map[string]any{
		"prompt":     "列出三个要点",
		"parameters": map[string]any{"temperature": 0.2},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result string `json:"result"`
	}
	decode(t, w, &resp)
	if resp.Result != "生成的结果" {
		t.Errorf("result: got %q", resp.Result)
	}
}

func TestAIRunImage(t *testing.T) {
	e := newEnv(t, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("upstream path: got %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"url": "https://img.example.com/1.png"}},
		})
	}))
	t.Cleanup(srv.Close)
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/run", map[string]any{
		"prompt": "a castle at dusk",
		"type":   "image",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result string `json:"result"`
	}
	decode(t, w, &resp)
	if resp.Result != "https://img.example.com/1.png" {
		t.Errorf("result: got %q", resp.Result)
	}
}

func TestAIRunUnsupportedType(t *testing.T) {
	e := newEnv(t, "")
	srv := chatUpstream(t, "unused")
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/run", map[string]any{
		"prompt": "x",
		"type":   "audio",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if got := detail(t, w); got != "不支持的任务类型" {
		t.Errorf("detail: got %q", got)
	}
}

func TestAIRunUpstreamFailure(t *testing.T) {
	e := newEnv(t, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/run", map[string]any{"prompt": "x"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", w.Code)
	}
	if got := detail(t, w); !strings.HasPrefix(got, "执行失败:") {
		t.Errorf("detail: got %q", got)
	}
}

func TestAIAnalyze(t *testing.T) {
	e := newEnv(t, "")
	srv := chatUpstream(t, `{"name":"诗歌生成","description":"写诗","tags":["写作"],"type":"text","category":"创意写作"}`)
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/analyze", map[string]any{"prompt": "写一首诗"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Name     string   `json:"name"`
		Tags     []string `json:"tags"`
		Type     string   `json:"type"`
		Category string   `json:"category"`
	}
	decode(t, w, &resp)
	if resp.Name != "诗歌生成" || resp.Category != "创意写作" {
		t.Errorf("analysis: got %+v", resp)
	}
}

func TestAIAnalyzeFallsBackOnUpstreamFailure(t *testing.T) {
	e := newEnv(t, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	e.configureAI(t, srv.URL)

	w := e.do(t, http.MethodPost, "/api/ai/analyze", map[string]any{"prompt": "x"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Tags     []string `json:"tags"`
		Type     string   `json:"type"`
		Category string   `json:"category"`
	}
	decode(t, w, &resp)
	if resp.Type != "text" || resp.Category != "通用" || len(resp.Tags) != 0 {
		t.Errorf("fallback payload: got %+v", resp)
	}
}
