package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	eduDegree      string
	eduInstitution string
	eduLocation    string
	eduStart       string
	eduEnd         string
	eduDescription string
)

var educationCmd = &cobra.Command{
	Use:   "education",
	Short: "Add, edit and remove education",
}

var educationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one degree or course",
	Args:  cobra.NoArgs,
	RunE:  runEducationAdd,
}

var educationEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the fields given as flags on an existing entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEducationEdit,
}

var educations = collection{
	section: types.SectionEducation,
	noun:    "education entry",
	ids: func(doc *types.ResumeDocument) []string {
		return idsOf(doc.Education, func(e types.Education) string { return e.ID })
	},
	remove: func(e *builder.Editors, id string) bool { return e.Education.Remove(id) },
	clear:  func(e *builder.Editors, c editor.Confirmer) bool { return e.Education.ClearAll(c) },
}

func init() {
	for _, c := range []*cobra.Command{educationAddCmd, educationEditCmd} {
		c.Flags().StringVar(&eduDegree, "degree", "", "Degree (required)")
		c.Flags().StringVar(&eduInstitution, "institution", "", "Institution (required)")
		c.Flags().StringVar(&eduLocation, "location", "", "Location")
		c.Flags().StringVar(&eduStart, "start", "", "Start date (required)")
		c.Flags().StringVar(&eduEnd, "end", "", "End date (required)")
		c.Flags().StringVar(&eduDescription, "description", "", "Description")
	}
	educationCmd.AddCommand(educationAddCmd, educationEditCmd)
	addCollectionCommands(educationCmd, educations)
	rootCmd.AddCommand(educationCmd)
}

func runEducationAdd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		ed := e.Education
		ed.Edit("")
		ed.SetDraft(types.Education{
			Degree:      eduDegree,
			Institution: eduInstitution,
			Location:    eduLocation,
			StartDate:   eduStart,
			EndDate:     eduEnd,
			Description: eduDescription,
		})
		saved, err := ed.Save()
		if err != nil {
			ed.CancelEdit()
			return err
		}
		fmt.Fprintf(a.out, "Added education entry %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}

func runEducationEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	id, err := educations.resolve(a, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	return a.edit(func(e *builder.Editors) error {
		ed := e.Education
		ed.Edit(id)
		d := ed.Draft()
		if flags.Changed("degree") {
			d.Degree = eduDegree
		}
		if flags.Changed("institution") {
			d.Institution = eduInstitution
		}
		if flags.Changed("location") {
			d.Location = eduLocation
		}
		if flags.Changed("start") {
			d.StartDate = eduStart
		}
		if flags.Changed("end") {
			d.EndDate = eduEnd
		}
		if flags.Changed("description") {
			d.Description = eduDescription
		}
		ed.SetDraft(d)

		saved, err := ed.Save()
		if err != nil {
			ed.CancelEdit()
			return err
		}
		fmt.Fprintf(a.out, "Updated education entry %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}
