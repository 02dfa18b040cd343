package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetYes bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the whole document after confirmation",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	done, err := a.builder.Reset(cmd.Context(), confirmer(cmd, resetYes))
	a.reportBanner()
	if err != nil {
		return err
	}
	if !done {
		fmt.Fprintln(a.out, "Cancelled") //nolint:errcheck
		return nil
	}
	fmt.Fprintln(a.out, "Resume reset") //nolint:errcheck
	return nil
}
