package server

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// corsHeaders let a browser UI on another local port call the API
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":   "*",
	"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":  "Content-Type",
	"Access-Control-Expose-Headers": "Content-Disposition, X-Export-Location, X-RateLimit-Remaining, Retry-After",
}

// withCORS answers preflight requests and tags every response
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects a client that has used up the bucket of the route's rule
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !info.Allowed {
			s.rateLimited(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimited writes the 429 body and Retry-After, rounded up to whole seconds
func (s *Server) rateLimited(w http.ResponseWriter, info ratelimit.Info) {
	retry := int((info.RetryAfter + time.Second - 1) / time.Second)
	w.Header().Set("Retry-After", strconv.Itoa(retry))

	if s.verbose {
		log.Printf("[rate-limit] %q exhausted, retry in %ds", info.Rule, retry)
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"message":     "Rate limit exceeded. Please try again later.",
		"limit":       info.Limit,
		"retry_after": retry,
		"reset_at":    info.ResetTime.UTC().Format(time.RFC3339),
	})
}

// withLogging logs each request with its status when verbose
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.verbose {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s -> %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder remembers the response status. It forwards Flush so event
// streams still work behind the logger.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// clientID keys rate limits by remote IP. The server binds locally, so
// RemoteAddr is trusted as is.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
