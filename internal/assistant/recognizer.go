package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// AudioChunk is one captured audio segment
type AudioChunk struct {
	Data     []byte
	MIMEType string
}

// AudioSource yields captured audio. Next returns io.EOF when capture ends.
type AudioSource interface {
	Next(ctx context.Context) (AudioChunk, error)
}

// TranscribingRecognizer implements Recognizer by transcribing chunks from an
// AudioSource as they arrive. Each partial result is the whole transcript so far.
type TranscribingRecognizer struct {
	newSource   func() (AudioSource, error)
	transcriber Transcriber
	verbose     bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTranscribingRecognizer creates a recognizer that opens a fresh source for every capture
func NewTranscribingRecognizer(newSource func() (AudioSource, error), transcriber Transcriber, verbose bool) *TranscribingRecognizer {
	return &TranscribingRecognizer{newSource: newSource, transcriber: transcriber, verbose: verbose}
}

// Start begins a capture. lang is passed through for logging only; the
// transcriber decides the language.
func (r *TranscribingRecognizer) Start(ctx context.Context, lang string, handler DictationHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return ErrRecognizerBusy
	}

	source, err := r.newSource()
	if err != nil {
		return fmt.Errorf("failed to open audio source: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	if r.verbose {
		log.Printf("[DICTATION] Capture started (%s)", lang)
	}
	go r.run(ctx, source, handler, done)
	return nil
}

// Stop cancels the running capture and waits for it to finish
func (r *TranscribingRecognizer) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *TranscribingRecognizer) run(ctx context.Context, source AudioSource, handler DictationHandler, done chan struct{}) {
	defer close(done)

	g, gctx := errgroup.WithContext(ctx)
	chunks := make(chan AudioChunk, 4)

	g.Go(func() error {
		defer close(chunks)
		for {
			chunk, err := source.Next(gctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("audio capture failed: %w", err)
			}
			select {
			case chunks <- chunk:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		var parts []string
		for chunk := range chunks {
			text, err := r.transcriber.Transcribe(gctx, chunk.Data, chunk.MIMEType)
			if err != nil {
				return err
			}
			text = NormalizeTranscript(text)
			if text == "" {
				continue
			}
			parts = append(parts, text)
			if handler.OnResult != nil {
				handler.OnResult(strings.Join(parts, " "))
			}
		}
		return nil
	})

	err := g.Wait()
	// A cancelled parent context means Stop was called, which is not an error
	stopped := ctx.Err() != nil

	// Release the recognizer before the final callbacks so they may start a new capture
	r.mu.Lock()
	if r.done == done {
		r.cancel()
		r.cancel, r.done = nil, nil
	}
	r.mu.Unlock()

	if err != nil && !stopped && handler.OnError != nil {
		handler.OnError(err)
	}
	if handler.OnEnd != nil {
		handler.OnEnd()
	}
	if r.verbose {
		log.Printf("[DICTATION] Capture ended")
	}
}

// FileAudioSource replays audio clips from files, one chunk per file
type FileAudioSource struct {
	paths []string
	next  int
}

// audioExtensions lists the clip types picked up from a directory
var audioExtensions = []string{".wav", ".mp3", ".webm", ".ogg", ".flac", ".m4a"}

// NewDirAudioSource replays every audio clip in dir in name order
func NewDirAudioSource(dir string) (*FileAudioSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(audioExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no audio clips in %s", dir)
	}
	slices.Sort(paths)
	return &FileAudioSource{paths: paths}, nil
}

// Next reads the next clip
func (s *FileAudioSource) Next(ctx context.Context) (AudioChunk, error) {
	if err := ctx.Err(); err != nil {
		return AudioChunk{}, err
	}
	if s.next >= len(s.paths) {
		return AudioChunk{}, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	data, err := os.ReadFile(path)
	if err != nil {
		return AudioChunk{}, err
	}
	return AudioChunk{Data: data, MIMEType: mimeTypeFor(path)}, nil
}

func mimeTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".webm":
		return "audio/webm"
	case ".ogg":
		return "audio/ogg"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return DefaultAudioMIMEType
}
