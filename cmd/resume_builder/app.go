package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

const (
	promptFile     = "assistant.json"
	serviceTimeout = 60 * time.Second
)

// app is the document and settings shared by every command
type app struct {
	cfg     config.Config
	builder *builder.Builder
	out     io.Writer
	errOut  io.Writer
	printer *observability.Printer
	closers []func()
}

// loadSettings merges, in order of precedence, the command line flags, the
// config file and the environment
func loadSettings() (config.Config, error) {
	var fileCfg config.Config
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	flagCfg := config.Config{Store: storeKind, StoreDir: storeDir}
	if ephemeral {
		flagCfg.Store = config.StoreMemory
	}

	fileAndEnv := fileCfg.MergeWithDefaults(config.FromEnv())
	merged := flagCfg.MergeWithDefaults(fileAndEnv)
	merged.Verbose = verbose || fileCfg.Verbose

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// openStore returns the configured key-value store and its cleanup
func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.StorePostgres:
		pg, err := storage.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		dir := cfg.StoreDir
		if dir == "" {
			dir = storage.DefaultDir()
		}
		fs, err := storage.NewFileStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// openApp loads the settings, opens the store and mounts the document.
// A load failure is reported but does not stop the command.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}

	adapter := storage.NewAdapter(store, storage.WithVerbose(cfg.Verbose))
	b := builder.New(adapter, builder.WithVerbose(cfg.Verbose))

	a := &app{
		cfg:     cfg,
		builder: b,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		closers: []func(){closeStore},
	}
	if err := b.Mount(cmd.Context()); err != nil {
		a.reportBanner()
	}
	return a, nil
}

// close releases everything opened for the command, newest first
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// reportBanner prints the persistence banner, if any
func (a *app) reportBanner() {
	if banner := a.builder.Banner(); banner != "" {
		fmt.Fprintln(a.errOut, banner) //nolint:errcheck
	}
}

// edit runs fn against the section editors and reports a failed save
func (a *app) edit(fn func(e *builder.Editors) error) error {
	err := a.builder.Edit(fn)
	a.reportBanner()
	return err
}

// newExporter builds the exporter with a sink per configured destination.
// outDir overrides the configured export directory.
func (a *app) newExporter(ctx context.Context, outDir string) (*export.Exporter, error) {
	rasterizer := export.NewChromeRasterizer(a.cfg.Verbose)
	rasterizer.ExecPath = a.cfg.ChromePath

	dir := outDir
	if dir == "" {
		dir = a.cfg.ExportDir
	}

	var sinks export.MultiSink
	if dir != "" {
		sinks = append(sinks, export.DirSink{Dir: dir})
	}
	if a.cfg.ExportBucket != "" {
		s3Sink, err := export.NewS3SinkFromConfig(ctx, export.S3Config{
			Bucket:    a.cfg.ExportBucket,
			Region:    a.cfg.ExportRegion,
			Prefix:    a.cfg.ExportPrefix,
			Endpoint:  a.cfg.ExportEndpoint,
			AccessKey: a.cfg.ExportAccessKey,
			SecretKey: a.cfg.ExportSecretKey,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}

	opts := []export.Option{export.WithVerbose(a.cfg.Verbose)}
	if len(sinks) > 0 {
		opts = append(opts, export.WithSink(sinks))
	}
	if a.cfg.Template != "" {
		opts = append(opts, export.WithTemplate(a.cfg.Template))
	}
	return export.NewExporter(rasterizer, opts...), nil
}

// newCompleter prefers a remote chat endpoint and falls back to Gemini
func (a *app) newCompleter(ctx context.Context, system string) (assistant.Completer, error) {
	if a.cfg.ChatEndpoint != "" {
		return assistant.NewHTTPCompleter(a.cfg.ChatEndpoint, serviceTimeout), nil
	}
	if a.cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable (or chat_endpoint) is required")
	}

	client, err := llm.NewClient(ctx, llm.ConfigFromEnv(), a.cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	})
	return assistant.NewLLMCompleter(client, system, llm.TierStandard), nil
}

// newTranscriber prefers a remote transcription endpoint and falls back to
// Gemini. It returns nil when neither is configured.
func (a *app) newTranscriber(ctx context.Context) (assistant.Transcriber, error) {
	if a.cfg.TranscribeEndpoint != "" {
		return assistant.NewHTTPTranscriber(a.cfg.TranscribeEndpoint, serviceTimeout), nil
	}
	if a.cfg.APIKey == "" {
		return nil, nil
	}

	system, err := prompts.Get(promptFile, "transcribe-system")
	if err != nil {
		return nil, err
	}
	user, err := prompts.Get(promptFile, "transcribe-user")
	if err != nil {
		return nil, err
	}
	transcriber, err := assistant.NewGenAITranscriber(ctx, a.cfg.APIKey, llm.ConfigFromEnv().ModelName(llm.TierLite), system, user)
	if err != nil {
		return nil, err
	}
	return transcriber, nil
}

// newRecognizer replays the configured audio clips through transcriber.
// It returns nil when dictation is not available.
func (a *app) newRecognizer(transcriber assistant.Transcriber) assistant.Recognizer {
	if transcriber == nil || a.cfg.AudioDir == "" {
		return nil
	}
	dir := a.cfg.AudioDir
	return assistant.NewTranscribingRecognizer(func() (assistant.AudioSource, error) {
		return assistant.NewDirAudioSource(dir)
	}, transcriber, a.cfg.Verbose)
}
