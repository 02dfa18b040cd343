package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// RenderPreview renders the on-screen text preview of doc
func RenderPreview(doc *types.ResumeDocument) string {
	return renderLayoutText(Project(doc))
}

func renderLayoutText(layout Layout) string {
	var sb strings.Builder

	sb.WriteString(layout.Name)
	sb.WriteString("\n")
	if len(layout.Contacts) > 0 {
		parts := make([]string, len(layout.Contacts))
		for i, c := range layout.Contacts {
			parts[i] = c.String()
		}
		sb.WriteString(strings.Join(parts, "  "))
		sb.WriteString("\n")
	}

	for _, block := range layout.Blocks {
		sb.WriteString("\n")
		sb.WriteString(block.Title)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("─", len([]rune(block.Title))))
		sb.WriteString("\n")

		if block.Section == types.SectionSkills {
			labels := make([]string, len(block.Entries))
			for i, e := range block.Entries {
				labels[i] = "[" + e.Heading + "]"
			}
			sb.WriteString(strings.Join(labels, " "))
			sb.WriteString("\n")
			continue
		}

		for _, e := range block.Entries {
			writeEntry(&sb, block.Section, e)
		}
	}

	return sb.String()
}

func writeEntry(sb *strings.Builder, section types.Section, e Entry) {
	if section == types.SectionAchievements {
		fmt.Fprintf(sb, "• %s\n", e.Heading)
		if e.Description != "" {
			fmt.Fprintf(sb, "  %s\n", e.Description)
		}
		return
	}

	fmt.Fprintf(sb, "%s    %s\n", e.Heading, e.Dates)
	if e.Subheading != "" {
		fmt.Fprintf(sb, "%s\n", e.Subheading)
	}
	if e.Description != "" {
		fmt.Fprintf(sb, "  %s\n", e.Description)
	}
	for _, bullet := range e.Bullets {
		fmt.Fprintf(sb, "  • %s\n", bullet)
	}
}
