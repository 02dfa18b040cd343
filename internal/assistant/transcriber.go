package assistant

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

// DefaultAudioMIMEType is assumed when a chunk carries no type
const DefaultAudioMIMEType = "audio/webm"

// Transcriber turns one audio payload into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// HTTPTranscriber uploads audio as the multipart field "audio" and reads {text}
type HTTPTranscriber struct {
	client   *resty.Client
	endpoint string
}

// NewHTTPTranscriber creates a transcriber posting to endpoint
func NewHTTPTranscriber(endpoint string, timeout time.Duration) *HTTPTranscriber {
	return &HTTPTranscriber{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

// Transcribe uploads audio and returns the normalized transcript
func (t *HTTPTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetFileReader("audio", "audio"+extensionFor(mimeType), bytes.NewReader(audio)).
		Post(t.endpoint)
	if err != nil {
		return "", &ServiceError{Service: "transcription", Message: "request failed", Cause: err}
	}

	body := resp.String()
	if resp.IsError() {
		return "", &ServiceError{
			Service:    "transcription",
			StatusCode: resp.StatusCode(),
			Message:    gjson.Get(body, "error").String(),
		}
	}

	text := gjson.Get(body, "text")
	if text.Type != gjson.String {
		return "", &ServiceError{Service: "transcription", StatusCode: resp.StatusCode(), Message: "response has no text"}
	}
	return NormalizeTranscript(text.String()), nil
}

// GenAITranscriber sends audio inline to a Gemini model
type GenAITranscriber struct {
	client *genai.Client
	model  string
	system string
	prompt string
}

// NewGenAITranscriber creates a Gemini API client for transcription
func NewGenAITranscriber(ctx context.Context, apiKey, model, system, prompt string) (*GenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAITranscriber{client: client, model: model, system: system, prompt: prompt}, nil
}

// Transcribe asks the model for a verbatim transcript and normalizes it
func (t *GenAITranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", &ServiceError{Service: "transcription", Message: "audio is empty"}
	}
	if mimeType == "" {
		mimeType = DefaultAudioMIMEType
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(t.prompt),
			genai.NewPartFromBytes(audio, mimeType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
	}
	if t.system != "" {
		config.SystemInstruction = genai.NewContentFromText(t.system, genai.RoleUser)
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, contents, config)
	if err != nil {
		return "", &ServiceError{Service: "transcription", Message: "model call failed", Cause: err}
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &ServiceError{Service: "transcription", Message: "model returned no text"}
	}
	return NormalizeTranscript(text), nil
}

func extensionFor(mimeType string) string {
	if mimeType == "" {
		mimeType = DefaultAudioMIMEType
	}
	base, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	switch base {
	case "audio/webm":
		return ".webm"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	}
	if exts, err := mime.ExtensionsByType(base); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
