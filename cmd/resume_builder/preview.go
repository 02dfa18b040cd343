package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	previewHTML bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the resume as plain text",
	Long:  `Print the live text preview, or with --html the markup that export rasterizes.`,
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "Print the export HTML instead of text")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	doc := a.builder.Document()
	if !previewHTML {
		fmt.Fprint(a.out, rendering.RenderPreview(doc)) //nolint:errcheck
		return nil
	}

	var html string
	if a.cfg.Template != "" {
		html, err = rendering.RenderHTMLWithTemplate(doc, a.cfg.Template)
	} else {
		html, err = rendering.RenderHTML(doc)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, html) //nolint:errcheck
	return nil
}
