package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	achTitle       string
	achDescription string
)

var achievementCmd = &cobra.Command{
	Use:     "achievement",
	Aliases: []string{"achievements"},
	Short:   "Add, edit and remove achievements",
}

var achievementAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one achievement",
	Args:  cobra.NoArgs,
	RunE:  runAchievementAdd,
}

var achievementEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the fields given as flags on an existing achievement",
	Args:  cobra.ExactArgs(1),
	RunE:  runAchievementEdit,
}

var achievementBatchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Stage one achievement per line (\"Title | Description\") and add them together",
	Long: "Reads lines from file, or stdin when file is omitted or \"-\". Every line is staged first; " +
		"nothing is added unless all of them are valid.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAchievementBatch,
}

var achievements = collection{
	section: types.SectionAchievements,
	noun:    "achievement",
	ids: func(doc *types.ResumeDocument) []string {
		return idsOf(doc.Achievements, func(a types.Achievement) string { return a.ID })
	},
	remove: func(e *builder.Editors, id string) bool { return e.Achievements.Remove(id) },
	clear:  func(e *builder.Editors, c editor.Confirmer) bool { return e.Achievements.ClearAll(c) },
}

func init() {
	for _, c := range []*cobra.Command{achievementAddCmd, achievementEditCmd} {
		c.Flags().StringVar(&achTitle, "title", "", "Achievement title (required)")
		c.Flags().StringVar(&achDescription, "description", "", "Achievement description")
	}
	achievementCmd.AddCommand(achievementAddCmd, achievementEditCmd, achievementBatchCmd)
	addCollectionCommands(achievementCmd, achievements)
	rootCmd.AddCommand(achievementCmd)
}

func runAchievementAdd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		ed := e.Achievements
		ed.Edit("")
		ed.SetDraft(types.Achievement{Title: achTitle, Description: achDescription})
		saved, err := ed.Save()
		if err != nil {
			ed.CancelEdit()
			return err
		}
		fmt.Fprintf(a.out, "Added achievement %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}

func runAchievementEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	id, err := achievements.resolve(a, args[0])
	if err != nil {
		return err
	}

	return a.edit(func(e *builder.Editors) error {
		ed := e.Achievements
		ed.Edit(id)
		d := ed.Draft()
		if cmd.Flags().Changed("title") {
			d.Title = achTitle
		}
		if cmd.Flags().Changed("description") {
			d.Description = achDescription
		}
		ed.SetDraft(d)
		saved, err := ed.Save()
		if err != nil {
			ed.CancelEdit()
			return err
		}
		fmt.Fprintf(a.out, "Updated achievement %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}

func runAchievementBatch(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	lines, err := readLines(cmd, path)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		ed := e.Achievements
		for i, line := range lines {
			title, description := splitPair(line)
			ed.SetDraft(types.Achievement{Title: title, Description: description})
			if err := ed.StageDraft(); err != nil {
				ed.DiscardStaged()
				ed.CancelEdit()
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if a.cfg.Verbose {
			labels := make([]string, 0, len(ed.Staged()))
			for _, item := range ed.Staged() {
				labels = append(labels, item.Title)
			}
			a.printer.PrintStaged("STAGED ACHIEVEMENTS", labels)
		}
		fmt.Fprintf(a.out, "Added %d achievements\n", ed.CommitStaged()) //nolint:errcheck
		return nil
	})
}
