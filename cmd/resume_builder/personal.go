package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var personalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Edit the contact details shown in the header",
}

var personalSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set one field: name, email, phone, github or linkedin",
	Args:  cobra.ExactArgs(2),
	RunE:  runPersonalSet,
}

var personalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the contact details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		a.printer.PrintSection(a.builder.Document(), types.SectionPersonalInfo)
		return nil
	},
}

func init() {
	personalCmd.AddCommand(personalSetCmd, personalShowCmd)
	rootCmd.AddCommand(personalCmd)
}

func runPersonalSet(cmd *cobra.Command, args []string) error {
	field, err := editor.ParseField(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		if err := e.PersonalInfo.Update(field, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Updated %s\n", field) //nolint:errcheck
		return nil
	})
}
