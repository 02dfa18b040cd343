package types

// Role identifies the author of a chat message
type Role string

// Chat roles accepted by the completion service
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one entry of an assistant conversation
type ChatMessage struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the body accepted by the chat completion endpoint
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,dive"`
}

// ChatResponse is the successful reply of the chat completion endpoint
type ChatResponse struct {
	Message string `json:"message"`
}

// TranscriptionResponse is the successful reply of the transcription endpoint
type TranscriptionResponse struct {
	Text string `json:"text"`
}
