package assistant

import (
	"context"
	"log"
)

// DictationLocale is the only capture language
const DictationLocale = "en-US"

// UnsupportedMessage is recorded when dictation is toggled without a recognizer
const UnsupportedMessage = "Speech recognition is not supported in this environment"

// DictationHandler receives capture callbacks. OnResult carries the whole
// transcript so far. After OnError the recognizer stops on its own; OnEnd is
// always the last call of a capture.
type DictationHandler struct {
	OnResult func(transcript string)
	OnError  func(err error)
	OnEnd    func()
}

// Recognizer is a continuous speech capture capability. Stop must be safe to
// call when nothing is running and must not invoke the handler synchronously
// while holding its own locks.
type Recognizer interface {
	Start(ctx context.Context, lang string, handler DictationHandler) error
	Stop()
}

// DictationSupported reports whether a recognizer is available
func (s *Session) DictationSupported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recognizer != nil
}

// Recording reports whether dictation is capturing
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// DictationError returns the last dictation error message, or ""
func (s *Session) DictationError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dictationErr
}

// ToggleDictation starts capture when idle and stops it when recording.
// Without a recognizer it records UnsupportedMessage and returns
// ErrDictationUnsupported.
func (s *Session) ToggleDictation(ctx context.Context) error {
	s.mu.Lock()
	if s.recognizer == nil {
		s.dictationErr = UnsupportedMessage
		s.mu.Unlock()
		return ErrDictationUnsupported
	}

	if s.recording {
		stop := s.stopDictationLocked()
		s.mu.Unlock()
		stop()
		return nil
	}

	s.dictationErr = ""
	s.recording = true
	s.generation++
	gen := s.generation
	recognizer := s.recognizer
	s.mu.Unlock()

	if err := recognizer.Start(ctx, DictationLocale, s.handlerFor(gen)); err != nil {
		s.mu.Lock()
		if s.generation == gen {
			s.recording = false
			s.dictationErr = "Error: " + err.Error()
		}
		s.mu.Unlock()
		return err
	}
	if s.verbose {
		log.Printf("[CHAT] Dictation started (%s)", DictationLocale)
	}
	return nil
}

// stopDictationLocked ends the current capture and returns the recognizer
// stop call to run after s.mu is released, or nil when not recording
func (s *Session) stopDictationLocked() func() {
	if !s.recording {
		return nil
	}
	s.recording = false
	s.generation++
	return s.recognizer.Stop
}

// handlerFor binds callbacks to one capture; callbacks from an older capture are ignored
func (s *Session) handlerFor(gen int) DictationHandler {
	return DictationHandler{
		OnResult: func(transcript string) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.generation == gen && s.recording {
				s.composer = transcript
			}
		},
		OnError: func(err error) {
			log.Printf("[CHAT] Dictation error: %v", err)
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.generation == gen {
				s.dictationErr = "Error: " + err.Error()
				s.recording = false
			}
		},
		OnEnd: func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.generation == gen {
				s.recording = false
			}
		},
	}
}
