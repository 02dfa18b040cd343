package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Message roles accepted by Chat
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a conversation
type Message struct {
	Role    string
	Content string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Chat continues a conversation and returns the model's reply. The last
	// message of history must come from the user.
	Chat(ctx context.Context, system string, history []Message, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates the Gemini client. A nil config uses DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Chat replays history into a chat session and sends the final user turn
func (c *GeminiClient) Chat(ctx context.Context, system string, history []Message, tier ModelTier) (string, error) {
	settings, err := c.config.Resolve(tier)
	if err != nil {
		return "", err
	}

	turns, err := splitHistory(system, history)
	if err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(settings.Name)
	model.SetTemperature(settings.Temperature)
	if settings.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(settings.MaxOutputTokens)
	}
	if turns.system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(turns.system))
	}

	session := model.StartChat()
	for _, m := range turns.prior {
		session.History = append(session.History, &genai.Content{
			Role:  geminiRole(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(turns.last))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.ModelName(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// chatTurns is a conversation split the way the chat session consumes it
type chatTurns struct {
	system string
	prior  []Message
	last   string
}

// splitHistory folds system messages into the system instruction and
// separates the final user turn from the replayed history
func splitHistory(system string, history []Message) (chatTurns, error) {
	instructions := []string{}
	if strings.TrimSpace(system) != "" {
		instructions = append(instructions, system)
	}

	var conversation []Message
	for i, m := range history {
		switch m.Role {
		case RoleSystem:
			instructions = append(instructions, m.Content)
		case RoleUser, RoleAssistant:
			conversation = append(conversation, m)
		default:
			return chatTurns{}, fmt.Errorf("message %d has unknown role %q", i, m.Role)
		}
	}

	if len(conversation) == 0 {
		return chatTurns{}, fmt.Errorf("conversation has no messages")
	}
	last := conversation[len(conversation)-1]
	if last.Role != RoleUser {
		return chatTurns{}, fmt.Errorf("last message must come from the user, got %q", last.Role)
	}

	return chatTurns{
		system: strings.Join(instructions, "\n\n"),
		prior:  conversation[:len(conversation)-1],
		last:   last.Content,
	}, nil
}

func geminiRole(role string) string {
	if role == RoleAssistant {
		return "model"
	}
	return "user"
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
