package main

import (
	"github.com/spf13/cobra"
)

var (
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as a one-page PDF",
	Long: `Render the document in headless Chrome, scale the snapshot onto one A4 page
and deliver it to --out, the configured export directory and the configured S3
bucket. Without any destination the PDF is written to the current directory.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Directory to write the PDF to")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	out := exportOut
	if out == "" && a.cfg.ExportDir == "" && a.cfg.ExportBucket == "" {
		out = "."
	}
	exporter, err := a.newExporter(cmd.Context(), out)
	if err != nil {
		return err
	}

	result, err := exporter.Export(cmd.Context(), a.builder.Document())
	if err != nil {
		return err
	}
	a.printer.PrintExportResult(result)
	return nil
}
