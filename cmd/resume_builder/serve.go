package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local REST API server",
	Long: `Start an HTTP server that exposes the document, preview, export, chat and
transcription endpoints. Chat and transcription answer 503 when no model or
remote endpoint is configured.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	system, err := prompts.Get(promptFile, "chat-system")
	if err != nil {
		return err
	}
	var completer assistant.Completer
	if c, err := a.newCompleter(cmd.Context(), system); err != nil {
		log.Printf("Chat disabled: %v", err)
	} else {
		completer = c
	}

	transcriber, err := a.newTranscriber(cmd.Context())
	if err != nil {
		return err
	}

	exporter, err := a.newExporter(cmd.Context(), "")
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        port,
		Builder:     a.builder,
		Completer:   completer,
		Transcriber: transcriber,
		Exporter:    exporter,
		Verbose:     a.cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
