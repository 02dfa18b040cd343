// Package server provides the local HTTP API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// shutdownTimeout bounds how long Run waits for in-flight requests
const shutdownTimeout = 30 * time.Second

// Server serves the document, assistant and export endpoints
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	builder     *builder.Builder
	completer   assistant.Completer
	transcriber assistant.Transcriber
	exporter    *export.Exporter
	rateLimiter *ratelimit.Limiter
	verbose     bool

	// streams is cancelled at shutdown so open event streams return
	streams       context.Context
	cancelStreams context.CancelFunc
}

// Config holds server configuration. Completer, Transcriber and Exporter are
// optional; their endpoints answer 503 when unset.
type Config struct {
	Port        int
	Builder     *builder.Builder
	Completer   assistant.Completer
	Transcriber assistant.Transcriber
	Exporter    *export.Exporter
	RateLimit   *ratelimit.Config // nil loads the limits from the environment
	Verbose     bool
}

// New wires the routes and middleware. Nothing listens until Run.
func New(cfg Config) (*Server, error) {
	if cfg.Builder == nil {
		return nil, errors.New("server requires a document builder")
	}

	limits := cfg.RateLimit
	if limits == nil {
		limits = ratelimit.LoadConfig()
	}
	limiter, err := ratelimit.NewLimiter(limits)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limits: %w", err)
	}

	streams, cancel := context.WithCancel(context.Background())
	s := &Server{
		builder:       cfg.Builder,
		completer:     cfg.Completer,
		transcriber:   cfg.Transcriber,
		exporter:      cfg.Exporter,
		rateLimiter:   limiter,
		verbose:       cfg.Verbose,
		streams:       streams,
		cancelStreams: cancel,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)

	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume/{section}", s.handleUpdateSection)
	mux.HandleFunc("DELETE /api/resume", s.handleResetResume)
	mux.HandleFunc("GET /api/resume/preview", s.handlePreview)
	mux.HandleFunc("POST /api/resume/export", s.handleExport)
	mux.HandleFunc("GET /api/resume/events", s.handleEvents)

	s.handler = s.withCORS(s.withLogging(s.withRateLimit(mux)))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: event streams and PDF exports outlive any fixed bound.
		BaseContext: func(net.Listener) context.Context { return streams },
	}
	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured port until ctx is done, then drains
// in-flight requests. Open event streams are ended first.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	log.Printf("Serving the resume API on http://%s", ln.Addr())

	served := make(chan error, 1)
	go func() { served <- s.httpServer.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	s.cancelStreams()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// Close stops the rate limiter and ends open event streams
func (s *Server) Close() {
	s.cancelStreams()
	s.rateLimiter.Stop()
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
