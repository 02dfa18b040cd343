package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	chatWithResume bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the AI resume assistant",
	Long: `Start an interactive conversation with the resume assistant.

Type a message and press enter to send it. Commands:
  /mic    start or stop dictation; the transcript fills the composer
  (empty) send the composer
  /quit   leave the conversation`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatWithResume, "with-resume", true, "Share the current resume text with the assistant")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	system, err := chatSystemPrompt(a.builder.Document())
	if err != nil {
		return err
	}
	completer, err := a.newCompleter(cmd.Context(), system)
	if err != nil {
		return err
	}
	transcriber, err := a.newTranscriber(cmd.Context())
	if err != nil {
		return err
	}

	opts := []assistant.SessionOption{assistant.WithVerbose(a.cfg.Verbose)}
	if r := a.newRecognizer(transcriber); r != nil {
		opts = append(opts, assistant.WithRecognizer(r))
	}
	session := assistant.NewSession(completer, opts...)
	defer session.Close()

	printLatest(a, session)
	if session.DictationSupported() {
		fmt.Fprintln(a.out, "Type /mic to dictate.") //nolint:errcheck
	}
	ctx := cmd.Context()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(a.out, "> ") //nolint:errcheck
		if !scanner.Scan() {
			fmt.Fprintln(a.out) //nolint:errcheck
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "/quit", "/exit":
			return nil
		case "/mic":
			toggleMic(ctx, a, session)
			continue
		case "":
			if strings.TrimSpace(session.Composer()) == "" {
				continue
			}
			err = session.SendComposer(ctx)
		default:
			err = session.Send(ctx, line)
		}

		if err != nil {
			fmt.Fprintf(a.errOut, "Error: %v\n", err) //nolint:errcheck
			continue
		}
		printLatest(a, session)
		if lastErr := session.LastError(); lastErr != nil && a.cfg.Verbose {
			fmt.Fprintf(a.errOut, "Chat error: %v\n", lastErr) //nolint:errcheck
		}
	}
}

// chatSystemPrompt returns the assistant instructions, with the resume text
// appended unless --with-resume=false
func chatSystemPrompt(doc *types.ResumeDocument) (string, error) {
	if !chatWithResume {
		return prompts.Get(promptFile, "chat-system")
	}
	return prompts.Render(promptFile, "chat-system-with-resume", struct{ Resume string }{rendering.RenderPreview(doc)})
}

// printLatest prints the newest assistant message
func printLatest(a *app, session *assistant.Session) {
	messages := session.Messages()
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]
	if last.Role == types.RoleAssistant {
		fmt.Fprintf(a.out, "assistant: %s\n", last.Content) //nolint:errcheck
	}
}

// toggleMic starts or stops dictation and reports the composer when it stops
func toggleMic(ctx context.Context, a *app, session *assistant.Session) {
	err := session.ToggleDictation(ctx)
	switch {
	case errors.Is(err, assistant.ErrDictationUnsupported):
		fmt.Fprintln(a.errOut, session.DictationError()) //nolint:errcheck
	case err != nil:
		fmt.Fprintf(a.errOut, "Dictation failed: %v\n", err) //nolint:errcheck
	case session.Recording():
		fmt.Fprintln(a.out, "Listening... type /mic again to stop") //nolint:errcheck
	default:
		if msg := session.DictationError(); msg != "" {
			fmt.Fprintln(a.errOut, msg) //nolint:errcheck
		}
		fmt.Fprintf(a.out, "Composer: %s\n(press enter to send)\n", session.Composer()) //nolint:errcheck
	}
}
