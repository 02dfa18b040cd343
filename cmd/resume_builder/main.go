// Package main provides the entry point for the resume builder CLI and local API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	ephemeral  bool
	storeKind  string
	storeDir   string
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Build a resume section by section",
	Long: "Resume Builder edits a single resume document (personal info, achievements, work experience, " +
		"education and skills), saves every change, previews it as text, exports a one-page PDF and " +
		"offers an AI assistant with optional dictation.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the document in memory only")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Store backend: file, memory or postgres")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store-dir", "", "Directory of the file store")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
