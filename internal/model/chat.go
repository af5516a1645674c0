package model

// Message roles accepted by chat-completion endpoints.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage представляет одно сообщение в диалоге.
// Reasoning is a side channel some models fill instead of Content.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

// ChatRequest представляет тело запроса к chat-completions API.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// ChatChoice представляет один вариант ответа от модели.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Usage содержит информацию об использовании токенов.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// APIError is the error object some endpoints return inside a 200 body.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    any    `json:"code,omitempty"`
}

// ChatResponse представляет тело ответа от API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Choices []ChatChoice `json:"choices"`
	Error   *APIError    `json:"error,omitempty"`
	Usage   Usage        `json:"usage"`
}

// NarrationResult is the parsed outcome of a narration request.
// On success Text holds the trimmed completion; it may be empty when the
// model wrote only into the reasoning side channel (ReasoningOnly is set,
// Reasoning carries that text verbatim — callers decide what to do with it).
type NarrationResult struct {
	Success       bool
	Text          string
	Error         string
	Usage         Usage
	ReasoningOnly bool
	Reasoning     string
}
