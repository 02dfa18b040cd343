package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/tidwall/gjson"
)

const (
	maxChatBody  = 1 << 20
	maxAudioBody = 32 << 20
)

// handleChat answers POST /api/chat with the assistant's reply to the conversation
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.completer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, fmt.Sprintf(MsgServiceUnavailable, "chat"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxChatBody))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !gjson.ValidBytes(body) {
		s.errorResponse(w, http.StatusInternalServerError, "Invalid JSON body")
		return
	}

	raw := gjson.GetBytes(body, "messages")
	if !raw.IsArray() {
		s.errorResponse(w, http.StatusBadRequest, MsgMessagesRequired)
		return
	}

	messages, err := parseMessages(raw)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	reply, err := s.completer.Complete(r.Context(), messages)
	if err != nil {
		log.Printf("Error in chat API: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ChatResponse{Message: assistant.CleanReply(reply)})
}

// parseMessages requires every entry to carry a non-empty role and content
func parseMessages(raw gjson.Result) ([]types.ChatMessage, error) {
	var messages []types.ChatMessage
	complete := true
	raw.ForEach(func(_, m gjson.Result) bool {
		role, content := m.Get("role"), m.Get("content")
		if !truthy(role) || !truthy(content) {
			complete = false
			return false
		}
		messages = append(messages, types.ChatMessage{Role: types.Role(role.String()), Content: content.String()})
		return true
	})
	if !complete {
		return nil, errors.New(MsgIncompleteMessage)
	}

	req := types.ChatRequest{Messages: messages}
	if len(messages) > 0 {
		if err := req.Validate(); err != nil {
			return nil, &ErrValidation{Field: "messages", Message: err.Error()}
		}
	}
	return messages, nil
}

// truthy reports whether a JSON value is present and not empty, false, zero or null
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	default:
		return true
	}
}

// handleTranscribe answers POST /api/transcribe with the text of the "audio" upload
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if s.transcriber == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, fmt.Sprintf(MsgServiceUnavailable, "transcription"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBody)
	file, header, err := r.FormFile("audio")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, MsgNoAudio)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error in transcribe API: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, MsgTranscribeFailed)
		return
	}

	text, err := s.transcriber.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Error in transcribe API: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, MsgTranscribeFailed)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.TranscriptionResponse{Text: assistant.NormalizeTranscript(text)})
}
