package main

import (
	"fmt"
	"slices"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	expTitle            string
	expCompany          string
	expLocation         string
	expStart            string
	expEnd              string
	expCurrent          bool
	expDescription      string
	expResponsibilities []string
	expRemove           []int
)

var experienceCmd = &cobra.Command{
	Use:     "experience",
	Aliases: []string{"work"},
	Short:   "Add, edit and remove work experience",
}

var experienceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one position",
	Args:  cobra.NoArgs,
	RunE:  runExperienceAdd,
}

var experienceEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the fields given as flags on an existing position",
	Long: "Only the flags given are changed. --responsibility appends to the existing list and " +
		"--remove-responsibility deletes by zero-based index before anything is appended.",
	Args: cobra.ExactArgs(1),
	RunE: runExperienceEdit,
}

var experiences = collection{
	section: types.SectionWorkExperience,
	noun:    "position",
	ids: func(doc *types.ResumeDocument) []string {
		return idsOf(doc.WorkExperience, func(w types.WorkExperience) string { return w.ID })
	},
	remove: func(e *builder.Editors, id string) bool { return e.WorkExperience.Remove(id) },
	clear:  func(e *builder.Editors, c editor.Confirmer) bool { return e.WorkExperience.ClearAll(c) },
}

func init() {
	for _, c := range []*cobra.Command{experienceAddCmd, experienceEditCmd} {
		c.Flags().StringVar(&expTitle, "title", "", "Job title (required)")
		c.Flags().StringVar(&expCompany, "company", "", "Company (required)")
		c.Flags().StringVar(&expLocation, "location", "", "Location")
		c.Flags().StringVar(&expStart, "start", "", "Start date (required)")
		c.Flags().StringVar(&expEnd, "end", "", "End date, ignored with --current")
		c.Flags().BoolVar(&expCurrent, "current", false, "This is the current position")
		c.Flags().StringVar(&expDescription, "description", "", "Description")
		c.Flags().StringArrayVar(&expResponsibilities, "responsibility", nil, "Responsibility (repeatable)")
	}
	experienceEditCmd.Flags().IntSliceVar(&expRemove, "remove-responsibility", nil, "Index of a responsibility to delete (repeatable)")

	experienceCmd.AddCommand(experienceAddCmd, experienceEditCmd)
	addCollectionCommands(experienceCmd, experiences)
	rootCmd.AddCommand(experienceCmd)
}

func runExperienceAdd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		ed := e.WorkExperience
		ed.Edit("")
		ed.SetDraft(types.WorkExperience{
			Title:       expTitle,
			Company:     expCompany,
			Location:    expLocation,
			StartDate:   expStart,
			EndDate:     expEnd,
			Current:     expCurrent,
			Description: expDescription,
		})
		return saveExperience(a, ed, "Added")
	})
}

func runExperienceEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	id, err := experiences.resolve(a, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	return a.edit(func(e *builder.Editors) error {
		ed := e.WorkExperience
		ed.Edit(id)
		d := ed.Draft()
		if flags.Changed("title") {
			d.Title = expTitle
		}
		if flags.Changed("company") {
			d.Company = expCompany
		}
		if flags.Changed("location") {
			d.Location = expLocation
		}
		if flags.Changed("start") {
			d.StartDate = expStart
		}
		if flags.Changed("end") {
			d.EndDate = expEnd
		}
		if flags.Changed("current") {
			d.Current = expCurrent
		}
		if flags.Changed("description") {
			d.Description = expDescription
		}
		ed.SetDraft(d)

		// Highest index first so earlier removals do not shift later ones
		remove := slices.Clone(expRemove)
		slices.Sort(remove)
		slices.Reverse(remove)
		for _, index := range slices.Compact(remove) {
			if err := ed.RemoveResponsibility(index); err != nil {
				ed.CancelEdit()
				return err
			}
		}
		return saveExperience(a, ed, "Updated")
	})
}

// saveExperience appends the --responsibility values to the draft and saves it
func saveExperience(a *app, ed *editor.WorkExperience, verb string) error {
	for _, r := range expResponsibilities {
		if err := ed.AddResponsibility(r); err != nil {
			ed.CancelEdit()
			return err
		}
	}
	saved, err := ed.Save()
	if err != nil {
		ed.CancelEdit()
		return err
	}
	fmt.Fprintf(a.out, "%s position %s\n", verb, saved.ID) //nolint:errcheck
	return nil
}
