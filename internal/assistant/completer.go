package assistant

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/tidwall/gjson"
)

// HTTPCompleter calls a chat endpoint that accepts {messages} and replies {message}
type HTTPCompleter struct {
	client   *resty.Client
	endpoint string
}

// NewHTTPCompleter creates a completer posting to endpoint
func NewHTTPCompleter(endpoint string, timeout time.Duration) *HTTPCompleter {
	return &HTTPCompleter{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

// Complete sends the whole conversation and returns the reply text
func (c *HTTPCompleter) Complete(ctx context.Context, messages []types.ChatMessage) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.ChatRequest{Messages: messages}).
		Post(c.endpoint)
	if err != nil {
		return "", &ServiceError{Service: "chat", Message: "request failed", Cause: err}
	}

	body := resp.String()
	if resp.IsError() {
		return "", &ServiceError{
			Service:    "chat",
			StatusCode: resp.StatusCode(),
			Message:    gjson.Get(body, "error").String(),
		}
	}

	message := gjson.Get(body, "message")
	if message.Type != gjson.String {
		return "", &ServiceError{Service: "chat", StatusCode: resp.StatusCode(), Message: "response has no message"}
	}
	return message.String(), nil
}

// LLMCompleter answers in-process through an llm.Client
type LLMCompleter struct {
	client llm.Client
	system string
	tier   llm.ModelTier
}

// NewLLMCompleter creates a completer that prepends system as the system instruction
func NewLLMCompleter(client llm.Client, system string, tier llm.ModelTier) *LLMCompleter {
	return &LLMCompleter{client: client, system: system, tier: tier}
}

// Complete forwards the conversation to the model
func (c *LLMCompleter) Complete(ctx context.Context, messages []types.ChatMessage) (string, error) {
	history := make([]llm.Message, len(messages))
	for i, m := range messages {
		history[i] = llm.Message{Role: string(m.Role), Content: m.Content}
	}
	reply, err := c.client.Chat(ctx, c.system, history, c.tier)
	if err != nil {
		return "", &ServiceError{Service: "chat", Message: "model call failed", Cause: err}
	}
	return reply, nil
}
