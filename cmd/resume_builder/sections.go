package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

// collection describes one list section for the shared list/remove/clear commands
type collection struct {
	section types.Section
	noun    string
	ids     func(doc *types.ResumeDocument) []string
	remove  func(e *builder.Editors, id string) bool
	clear   func(e *builder.Editors, c editor.Confirmer) bool
}

// resolve finds the id ref refers to in the open document
func (c collection) resolve(a *app, ref string) (string, error) {
	return resolveID(c.ids(a.builder.Document()), ref, c.noun)
}

// idsOf lists the id of every item
func idsOf[T any](items []T, id func(T) string) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}

// addCollectionCommands registers list, remove and clear under parent
func addCollectionCommands(parent *cobra.Command, c collection) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List every %s with its id", c.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			a.printer.PrintSection(a.builder.Document(), c.section)
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: fmt.Sprintf("Remove one %s (an unambiguous id prefix is enough)", c.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := c.resolve(a, args[0])
			if err != nil {
				return err
			}
			return a.edit(func(e *builder.Editors) error {
				if !c.remove(e, id) {
					return fmt.Errorf("no %s with id %q", c.noun, id)
				}
				fmt.Fprintf(a.out, "Removed %s %s\n", c.noun, id) //nolint:errcheck
				return nil
			})
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: fmt.Sprintf("Remove every %s after confirmation", c.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			return a.edit(func(e *builder.Editors) error {
				if c.clear(e, confirmer(cmd, yes)) {
					fmt.Fprintf(a.out, "Cleared %s\n", c.section.Title()) //nolint:errcheck
				} else {
					fmt.Fprintln(a.out, "Cancelled") //nolint:errcheck
				}
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	parent.AddCommand(listCmd, removeCmd, clearCmd)
}

// resolveID matches ref against ids exactly or as a unique prefix
func resolveID(ids []string, ref, noun string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s with id %q", noun, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d entries", ref, len(matches))
	}
}

// confirmer answers yes when skip is set and otherwise asks on stdin
func confirmer(cmd *cobra.Command, skip bool) editor.Confirmer {
	if skip {
		return editor.AlwaysConfirm
	}
	return editor.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt) //nolint:errcheck
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

// readLines returns the non-blank lines of path, or of stdin when path is "" or "-"
func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// splitPair splits "left | right" on the first pipe
func splitPair(line string) (string, string) {
	left, right, _ := strings.Cut(line, "|")
	return strings.TrimSpace(left), strings.TrimSpace(right)
}
