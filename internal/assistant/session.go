package assistant

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// Greeting seeds every new session
const Greeting = "Hi! I'm your AI resume assistant. How can I help you with your resume today?"

// ApologyMessage replaces the reply when the chat service fails
const ApologyMessage = "Sorry, I encountered an error. Please try again."

// State is the request lifecycle state of a session
type State string

// Session states. ErrorDisplayed accepts new sends like Idle.
const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
	StateErrorDisplayed   State = "error_displayed"
)

// Completer is the chat completion service
type Completer interface {
	Complete(ctx context.Context, messages []types.ChatMessage) (string, error)
}

// Session is one assistant conversation with an optional dictation capability.
// At most one chat request is in flight at a time.
type Session struct {
	mu sync.Mutex

	messages  []types.ChatMessage
	state     State
	composer  string
	lastErr   error
	completer Completer
	verbose   bool

	recognizer   Recognizer
	recording    bool
	dictationErr string
	generation   int
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithRecognizer enables dictation through r
func WithRecognizer(r Recognizer) SessionOption {
	return func(s *Session) {
		s.recognizer = r
	}
}

// WithVerbose enables [CHAT] logging
func WithVerbose(verbose bool) SessionOption {
	return func(s *Session) {
		s.verbose = verbose
	}
}

// NewSession creates a session seeded with the greeting
func NewSession(completer Completer, opts ...SessionOption) *Session {
	s := &Session{
		messages:  []types.ChatMessage{{Role: types.RoleAssistant, Content: Greeting}},
		state:     StateIdle,
		completer: completer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Messages returns a copy of the conversation
func (s *Session) Messages() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ChatMessage(nil), s.messages...)
}

// State returns the current request state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CanSend reports whether Send would accept a message now. Only a request in
// flight blocks it.
func (s *Session) CanSend() bool {
	return s.State() != StateAwaitingResponse
}

// Composer returns the pending input text
func (s *Session) Composer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer
}

// SetComposer replaces the pending input text
func (s *Session) SetComposer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer = text
}

// LastError returns the most recent chat service failure, or nil
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SendComposer sends the pending input text
func (s *Session) SendComposer(ctx context.Context) error {
	return s.Send(ctx, s.Composer())
}

// Send appends text as a user message and asks the completer for a reply.
// Blank text and sends while a request is in flight are rejected without any
// change. A service failure is not returned: it appends ApologyMessage, moves
// to StateErrorDisplayed and is kept in LastError. StateErrorDisplayed is
// idle for Send, so gate on CanSend rather than on State() == StateIdle.
func (s *Session) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return ErrEmptyMessage
	}
	if s.state == StateAwaitingResponse {
		s.mu.Unlock()
		return ErrRequestInFlight
	}

	stop := s.stopDictationLocked()

	s.messages = append(s.messages, types.ChatMessage{Role: types.RoleUser, Content: text})
	s.composer = ""
	s.state = StateAwaitingResponse
	history := append([]types.ChatMessage(nil), s.messages...)
	s.mu.Unlock()

	if stop != nil {
		stop()
	}

	if s.verbose {
		log.Printf("[CHAT] Sending %d messages", len(history))
	}
	reply, err := s.completer.Complete(ctx, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("[CHAT] Error: %v", err)
		s.lastErr = err
		s.messages = append(s.messages, types.ChatMessage{Role: types.RoleAssistant, Content: ApologyMessage})
		s.state = StateErrorDisplayed
		return nil
	}

	s.lastErr = nil
	s.messages = append(s.messages, types.ChatMessage{Role: types.RoleAssistant, Content: CleanReply(reply)})
	s.state = StateIdle
	if s.verbose {
		log.Printf("[CHAT] Received reply (%d chars)", len(reply))
	}
	return nil
}

// Close stops dictation if it is running
func (s *Session) Close() {
	s.mu.Lock()
	stop := s.stopDictationLocked()
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}
