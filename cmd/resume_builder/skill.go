package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	skillName  string
	skillLevel string
)

var skillCmd = &cobra.Command{
	Use:     "skill",
	Aliases: []string{"skills"},
	Short:   "Add, edit and remove skills",
}

var skillAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one skill",
	Args:  cobra.NoArgs,
	RunE:  runSkillAdd,
}

var skillEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the name or level of an existing skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillEdit,
}

var skillBulkCmd = &cobra.Command{
	Use:     "bulk <comma separated names>",
	Short:   "Add one level-less skill per comma separated name",
	Example: `  resume_builder skill bulk "Go, SQL, Docker"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSkillBulk,
}

var skillBatchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Stage one skill per line (\"Name | Level\") and add them together",
	Long: "Reads lines from file, or stdin when file is omitted or \"-\". Every line is staged first; " +
		"nothing is added unless all of them are valid.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSkillBatch,
}

var skills = collection{
	section: types.SectionSkills,
	noun:    "skill",
	ids: func(doc *types.ResumeDocument) []string {
		return idsOf(doc.Skills, func(s types.Skill) string { return s.ID })
	},
	remove: func(e *builder.Editors, id string) bool { return e.Skills.Remove(id) },
	clear:  func(e *builder.Editors, c editor.Confirmer) bool { return e.Skills.ClearAll(c) },
}

func init() {
	levels := make([]string, 0, len(types.SkillLevels()))
	for _, l := range types.SkillLevels() {
		levels = append(levels, string(l))
	}
	levelUsage := "Proficiency: " + strings.Join(levels, ", ")

	for _, c := range []*cobra.Command{skillAddCmd, skillEditCmd} {
		c.Flags().StringVar(&skillName, "name", "", "Skill name (required)")
		c.Flags().StringVar(&skillLevel, "level", "", levelUsage)
	}
	skillCmd.AddCommand(skillAddCmd, skillEditCmd, skillBulkCmd, skillBatchCmd)
	addCollectionCommands(skillCmd, skills)
	rootCmd.AddCommand(skillCmd)
}

func runSkillAdd(cmd *cobra.Command, _ []string) error {
	level, err := types.ParseSkillLevel(skillLevel)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		ed := e.Skills
		ed.Edit("")
		ed.SetDraft(types.Skill{Name: skillName, Level: level})
		saved, err := ed.Save()
		if err != nil {
			ed.CancelEdit()
			return err
		}
		fmt.Fprintf(a.out, "Added skill %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}

func runSkillEdit(cmd *cobra.Command, args []string) error {
	level, err := types.ParseSkillLevel(skillLevel)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	id, err := skills.resolve(a, args[0])
	if err != nil {
		return err
	}

	return a.edit(func(e *builder.Editors) error {
		ed := e.Skills
		ed.Edit(id)
		d := ed.Draft()
		if cmd.Flags().Changed("name") {
			d.Name = skillName
		}
		if cmd.Flags().Changed("level") {
			d.Level = level
		}
		ed.SetDraft(d)
		saved, err := ed.Save()
		if err != nil {
			ed.CancelEdit()
			return err
		}
		fmt.Fprintf(a.out, "Updated skill %s\n", saved.ID) //nolint:errcheck
		return nil
	})
}

func runSkillBulk(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.edit(func(e *builder.Editors) error {
		added := e.Skills.BulkAdd(strings.Join(args, ","))
		fmt.Fprintf(a.out, "Added %d skills\n", len(added)) //nolint:errcheck
		return nil
	})
}

func runSkillBatch(cmd *cobra.Command, args []string) error {
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
		ed := e.Skills
		for i, line := range lines {
			name, rawLevel := splitPair(line)
			level, err := types.ParseSkillLevel(rawLevel)
			if err == nil {
				ed.SetDraft(types.Skill{Name: name, Level: level})
				err = ed.StageDraft()
			}
			if err != nil {
				ed.DiscardStaged()
				ed.CancelEdit()
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if a.cfg.Verbose {
			labels := make([]string, 0, len(ed.Staged()))
			for _, item := range ed.Staged() {
				labels = append(labels, rendering.SkillLabel(item))
			}
			a.printer.PrintStaged("STAGED SKILLS", labels)
		}
		fmt.Fprintf(a.out, "Added %d skills\n", ed.CommitStaged()) //nolint:errcheck
		return nil
	})
}
