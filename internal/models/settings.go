package models

// SettingsID is the fixed primary key of the single settings row.
const SettingsID = 1

// Defaults applied by the schema and the lazy-create path.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-3.5-turbo"
)

// DefaultOptimizeTemplate is the system prompt used by the optimize
// endpoint when no custom template has been saved.
const DefaultOptimizeTemplate = `你是一个专业的提示词工程师 (Prompt Engineer)。
你的任务是优化用户提供的 Prompt，使其更加清晰、结构化，并能引导 AI 生成更高质量的结果。
请保持原意不变，但进行以下改进：
1. 明确角色设定 (Role)
2. 补充背景信息 (Context)
3. 细化任务描述 (Task)
4. 规定输出格式 (Format)

请直接输出优化后的 Prompt 内容，不要包含解释性文字。`

// Settings is the single configuration row (id fixed at 1) holding the
// provider credentials, model choice, and prompt templates. It is created
// lazily and never deleted, only overwritten.
type Settings struct {
	ID                     int64      `json:"id"`
	OpenAIAPIKey           *string    `json:"openai_api_key"`
	OpenAIBaseURL          string     `json:"openai_base_url"`
	OpenAIModel            string     `json:"openai_model"`
	AvailableModels        StringList `json:"available_models"`
	Provider               string     `json:"provider"`
	OptimizePromptTemplate string     `json:"optimize_prompt_template"`
}

// APIKey returns the configured provider key, or "" when unset.
func (s *Settings) APIKey() string {
	if s.OpenAIAPIKey == nil {
		return ""
	}
	return *s.OpenAIAPIKey
}
