package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter replies with a fixed text or error and records each history
type fakeCompleter struct {
	reply     string
	err       error
	histories [][]types.ChatMessage
	onCall    func()
}

func (f *fakeCompleter) Complete(_ context.Context, messages []types.ChatMessage) (string, error) {
	f.histories = append(f.histories, messages)
	if f.onCall != nil {
		f.onCall()
	}
	return f.reply, f.err
}

// fakeRecognizer lets tests drive dictation callbacks directly
type fakeRecognizer struct {
	mu       sync.Mutex
	handler  DictationHandler
	lang     string
	starts   int
	stops    int
	startErr error
}

func (f *fakeRecognizer) Start(_ context.Context, lang string, h DictationHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	f.lang = lang
	f.handler = h
	return nil
}

func (f *fakeRecognizer) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func TestNewSession_SeededWithGreeting(t *testing.T) {
	s := NewSession(&fakeCompleter{})

	assert.Equal(t, []types.ChatMessage{{Role: types.RoleAssistant, Content: Greeting}}, s.Messages())
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.DictationSupported())
}

func TestSend_AppendsUserAndReply(t *testing.T) {
	c := &fakeCompleter{reply: "Use **strong** verbs"}
	s := NewSession(c)
	s.SetComposer("How do I improve my resume?")

	require.NoError(t, s.SendComposer(context.Background()))

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, types.ChatMessage{Role: types.RoleUser, Content: "How do I improve my resume?"}, msgs[1])
	assert.Equal(t, types.ChatMessage{Role: types.RoleAssistant, Content: "Use strong verbs"}, msgs[2])
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Composer())

	// The request carries the whole history including the greeting
	require.Len(t, c.histories, 1)
	assert.Equal(t, msgs[:2], c.histories[0])
}

func TestSend_BlankIsRejected(t *testing.T) {
	c := &fakeCompleter{reply: "x"}
	s := NewSession(c)

	for _, text := range []string{"", "   ", "\n\t"} {
		assert.ErrorIs(t, s.Send(context.Background(), text), ErrEmptyMessage)
	}
	assert.Len(t, s.Messages(), 1)
	assert.Empty(t, c.histories)
	assert.Equal(t, StateIdle, s.State())
}

func TestSend_RejectedWhileAwaitingResponse(t *testing.T) {
	c := &fakeCompleter{reply: "ok"}
	s := NewSession(c)

	var nested error
	c.onCall = func() {
		assert.Equal(t, StateAwaitingResponse, s.State())
		assert.False(t, s.CanSend())
		nested = s.Send(context.Background(), "second")
	}

	require.NoError(t, s.Send(context.Background(), "first"))
	assert.ErrorIs(t, nested, ErrRequestInFlight)
	assert.Len(t, s.Messages(), 3)
	assert.Len(t, c.histories, 1)
}

func TestSend_FailureAppendsApology(t *testing.T) {
	c := &fakeCompleter{err: errors.New("service down")}
	s := NewSession(c)

	require.NoError(t, s.Send(context.Background(), "Hello"))

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ApologyMessage, msgs[2].Content)
	assert.Equal(t, types.RoleAssistant, msgs[2].Role)
	assert.Equal(t, StateErrorDisplayed, s.State())
	assert.EqualError(t, s.LastError(), "service down")
	assert.True(t, s.CanSend(), "an error display accepts the next message")

	// The session stays usable
	c.err = nil
	c.reply = "Back online"
	require.NoError(t, s.Send(context.Background(), "Retry"))
	assert.Equal(t, StateIdle, s.State())
	assert.NoError(t, s.LastError())
	assert.Len(t, s.Messages(), 5)
}

func TestToggleDictation_Unsupported(t *testing.T) {
	s := NewSession(&fakeCompleter{})
	s.SetComposer("draft")

	err := s.ToggleDictation(context.Background())
	assert.ErrorIs(t, err, ErrDictationUnsupported)
	assert.Equal(t, UnsupportedMessage, s.DictationError())
	assert.False(t, s.Recording())
	assert.Equal(t, "draft", s.Composer())
	assert.Equal(t, StateIdle, s.State())
}

func TestToggleDictation_PartialsOverwriteComposer(t *testing.T) {
	r := &fakeRecognizer{}
	s := NewSession(&fakeCompleter{}, WithRecognizer(r))
	s.SetComposer("typed text")

	require.NoError(t, s.ToggleDictation(context.Background()))
	assert.True(t, s.Recording())
	assert.Equal(t, DictationLocale, r.lang)

	r.handler.OnResult("I led")
	assert.Equal(t, "I led", s.Composer())
	r.handler.OnResult("I led a team of five")
	assert.Equal(t, "I led a team of five", s.Composer())

	require.NoError(t, s.ToggleDictation(context.Background()))
	assert.False(t, s.Recording())
	assert.Equal(t, 1, r.stops)

	// Late results from the stopped capture are ignored
	r.handler.OnResult("stale")
	assert.Equal(t, "I led a team of five", s.Composer())
}

func TestToggleDictation_ErrorStopsCapture(t *testing.T) {
	r := &fakeRecognizer{}
	s := NewSession(&fakeCompleter{}, WithRecognizer(r))

	require.NoError(t, s.ToggleDictation(context.Background()))
	r.handler.OnError(errors.New("no-speech"))

	assert.False(t, s.Recording())
	assert.Equal(t, "Error: no-speech", s.DictationError())

	// Starting again clears the error
	require.NoError(t, s.ToggleDictation(context.Background()))
	assert.Empty(t, s.DictationError())
	assert.True(t, s.Recording())
}

func TestToggleDictation_EndMarksNotRecording(t *testing.T) {
	r := &fakeRecognizer{}
	s := NewSession(&fakeCompleter{}, WithRecognizer(r))

	require.NoError(t, s.ToggleDictation(context.Background()))
	r.handler.OnEnd()
	assert.False(t, s.Recording())
}

func TestToggleDictation_StartFailure(t *testing.T) {
	r := &fakeRecognizer{startErr: errors.New("microphone busy")}
	s := NewSession(&fakeCompleter{}, WithRecognizer(r))

	assert.Error(t, s.ToggleDictation(context.Background()))
	assert.False(t, s.Recording())
	assert.Equal(t, "Error: microphone busy", s.DictationError())
}

func TestSend_StopsDictationFirst(t *testing.T) {
	r := &fakeRecognizer{}
	c := &fakeCompleter{reply: "Noted"}
	s := NewSession(c, WithRecognizer(r))

	require.NoError(t, s.ToggleDictation(context.Background()))
	r.handler.OnResult("Add Kubernetes to my skills")

	c.onCall = func() {
		assert.False(t, s.Recording())
		assert.Equal(t, 1, r.stops)
	}
	require.NoError(t, s.SendComposer(context.Background()))
	assert.Equal(t, "Add Kubernetes to my skills", s.Messages()[1].Content)
}

func TestClose_StopsDictation(t *testing.T) {
	r := &fakeRecognizer{}
	s := NewSession(&fakeCompleter{}, WithRecognizer(r))

	s.Close()
	assert.Zero(t, r.stops)

	require.NoError(t, s.ToggleDictation(context.Background()))
	s.Close()
	assert.Equal(t, 1, r.stops)
}
