package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// settingsEnv lists every variable the settings read from the environment
var settingsEnv = []string{
	"RESUME_STORE", "RESUME_STORE_DIR", "DATABASE_URL",
	"GEMINI_API_KEY", "CHAT_ENDPOINT", "TRANSCRIBE_ENDPOINT",
	"CHROME_PATH", "EXPORT_DIR", "EXPORT_BUCKET", "AWS_REGION",
	"EXPORT_ENDPOINT", "EXPORT_ACCESS_KEY", "EXPORT_SECRET_KEY",
}

// isolateEnv clears the settings environment so a developer .env cannot leak in
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range settingsEnv {
		t.Setenv(key, "")
	}
}

// resetFlags restores every flag of the command tree to its default, since
// cobra keeps parsed values between Execute calls
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// cliResult is the captured output of one in-process invocation
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command against the file store in dir
func runCLI(t *testing.T, dir, stdin string, args ...string) cliResult {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--store-dir", dir}, args...))

	err := rootCmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// lastField returns the final word of output, e.g. the id in "Added skill <id>"
func lastField(output string) string {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
