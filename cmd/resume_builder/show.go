package main

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Summarize the document, or list one section with ids",
	Long: `Without arguments prints a count per section. With a section name
(personal, achievements, experience, education or skills) lists its entries
with the short ids accepted by edit and remove.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var section types.Section
	if len(args) == 1 {
		s, err := types.ParseSection(args[0])
		if err != nil {
			return err
		}
		section = s
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if section == "" {
		a.printer.PrintDocumentSummary(a.builder.Document())
		return nil
	}
	a.printer.PrintSection(a.builder.Document(), section)
	return nil
}
