package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/builder"
)

// reconnectDelay is the retry hint sent to browsers when the stream opens
const reconnectDelay = 3 * time.Second

// eventStream writes builder events to one text/event-stream response.
// Every event carries an increasing id so a client can tell if it missed some.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// openEventStream sends the stream headers and the reconnect hint
func openEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &eventStream{w: w, flusher: flusher}
	if _, err := fmt.Fprintf(w, ": connected\nretry: %d\n\n", reconnectDelay.Milliseconds()); err != nil {
		return nil, err
	}
	flusher.Flush()
	return s, nil
}

// send writes e as a named event with a JSON payload
func (s *eventStream) send(e builder.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, e.Type, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// ping writes a comment so idle proxies keep the connection open
func (s *eventStream) ping() error {
	if _, err := fmt.Fprint(s.w, ": keep-alive\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
