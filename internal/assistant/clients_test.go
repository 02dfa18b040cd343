package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCompleter_Success(t *testing.T) {
	var got types.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Quantify your impact"}`))
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, 5*time.Second)
	reply, err := c.Complete(context.Background(), []types.ChatMessage{{Role: types.RoleUser, Content: "Tips?"}})
	require.NoError(t, err)
	assert.Equal(t, "Quantify your impact", reply)
	assert.Equal(t, []types.ChatMessage{{Role: types.RoleUser, Content: "Tips?"}}, got.Messages)
}

func TestHTTPCompleter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Each message must have a 'role' and 'content'"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPCompleter(srv.URL, 5*time.Second).Complete(context.Background(), nil)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, "Each message must have a 'role' and 'content'", svcErr.Message)
}

func TestHTTPCompleter_MalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply":42}`))
	}))
	defer srv.Close()

	_, err := NewHTTPCompleter(srv.URL, 5*time.Second).Complete(context.Background(), nil)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "response has no message", svcErr.Message)
}

func TestHTTPTranscriber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("audio")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("RIFF"), data)
		assert.Equal(t, "audio.wav", header.Filename)
		_, _ = w.Write([]byte(`{"text":"'I heard: hello there'"}`))
	}))
	defer srv.Close()

	text, err := NewHTTPTranscriber(srv.URL, 5*time.Second).Transcribe(context.Background(), []byte("RIFF"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestHTTPTranscriber_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to transcribe audio"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPTranscriber(srv.URL, 5*time.Second).Transcribe(context.Background(), []byte("x"), "")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Failed to transcribe audio", svcErr.Message)
}

// fakeLLM records the conversation passed to Chat
type fakeLLM struct {
	system  string
	history []llm.Message
	tier    llm.ModelTier
	reply   string
	err     error
}

func (f *fakeLLM) Chat(_ context.Context, system string, history []llm.Message, tier llm.ModelTier) (string, error) {
	f.system, f.history, f.tier = system, history, tier
	return f.reply, f.err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeLLM) Close() error                  { return nil }

func TestLLMCompleter(t *testing.T) {
	client := &fakeLLM{reply: "Sure"}
	c := NewLLMCompleter(client, "be helpful", llm.TierStandard)

	reply, err := c.Complete(context.Background(), []types.ChatMessage{
		{Role: types.RoleAssistant, Content: Greeting},
		{Role: types.RoleUser, Content: "Help"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sure", reply)
	assert.Equal(t, "be helpful", client.system)
	assert.Equal(t, llm.TierStandard, client.tier)
	assert.Equal(t, []llm.Message{{Role: "assistant", Content: Greeting}, {Role: "user", Content: "Help"}}, client.history)

	client.err = errors.New("quota")
	_, err = c.Complete(context.Background(), nil)
	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".webm", extensionFor(""))
	assert.Equal(t, ".wav", extensionFor("audio/wav"))
	assert.Equal(t, ".webm", extensionFor("audio/webm;codecs=opus"))
	assert.Equal(t, "", extensionFor("not a type;;"))
}
