package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerationRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float32
}

// GenerationSettings bounds every outbound generation call.
type GenerationSettings struct {
	MaxTokens   int
	Temperature float32
}
