// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens line to at most width runes
func truncate(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	return string(runes[:width-3]) + "..."
}

// pad right-fills line with spaces to width runes
func pad(line string, width int) string {
	n := utf8.RuneCountInString(line)
	if n >= width {
		return line
	}
	return line + strings.Repeat(" ", width-n)
}

// PrintDocumentSummary outputs the header and a count per section
func (p *Printer) PrintDocumentSummary(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}
	layout := rendering.Project(doc)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:             %s\n", layout.Name))
	for _, c := range layout.Contacts {
		sb.WriteString(fmt.Sprintf("  %s\n", c.String()))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Achievements:     %d\n", len(doc.Achievements)))
	sb.WriteString(fmt.Sprintf("Work Experience:  %d\n", len(doc.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Education:        %d\n", len(doc.Education)))
	sb.WriteString(fmt.Sprintf("Skills:           %d", len(doc.Skills)))

	if len(doc.Skills) > 0 {
		count := min(len(doc.Skills), maxItemsToShow)
		labels := make([]string, count)
		for i := 0; i < count; i++ {
			labels[i] = doc.Skills[i].Name
		}
		sb.WriteString(fmt.Sprintf("\n  %s", strings.Join(labels, ", ")))
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(doc.Skills)-maxItemsToShow))
		}
	}

	p.printBox("RESUME SUMMARY", sb.String())
}

// PrintSection lists every item of one collection with its id
func (p *Printer) PrintSection(doc *types.ResumeDocument, section types.Section) {
	if doc == nil {
		return
	}

	var lines []string
	switch section {
	case types.SectionAchievements:
		for _, a := range doc.Achievements {
			lines = append(lines, itemLine(a.ID, a.Title))
		}
	case types.SectionWorkExperience:
		for _, w := range doc.WorkExperience {
			lines = append(lines, itemLine(w.ID, fmt.Sprintf("%s, %s (%s - %s)", w.Title, w.Company, w.StartDate, w.DisplayEndDate())))
		}
	case types.SectionEducation:
		for _, e := range doc.Education {
			lines = append(lines, itemLine(e.ID, fmt.Sprintf("%s, %s", e.Degree, e.Institution)))
		}
	case types.SectionSkills:
		for _, s := range doc.Skills {
			lines = append(lines, itemLine(s.ID, rendering.SkillLabel(s)))
		}
	case types.SectionPersonalInfo:
		info := doc.PersonalInfo
		lines = append(lines,
			"Name:     "+info.Name,
			"Email:    "+info.Email,
			"Phone:    "+info.Phone,
			"GitHub:   "+info.GitHub,
			"LinkedIn: "+info.LinkedIn,
		)
	}
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}

	p.printBox(strings.ToUpper(section.Title()), strings.Join(lines, "\n"))
}

// PrintStaged lists drafts waiting in a staging buffer with their positions
func (p *Printer) PrintStaged(title string, labels []string) {
	if len(labels) == 0 {
		p.printBox(title, "Nothing staged")
		return
	}
	var sb strings.Builder
	for i, label := range labels {
		sb.WriteString(fmt.Sprintf("[%d] %s", i, label))
		if i < len(labels)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(title, sb.String())
}

// PrintExportResult outputs where the PDF went and which sections it carries
func (p *Printer) PrintExportResult(result *export.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:      %s\n", result.FileName))
	sb.WriteString(fmt.Sprintf("Size:      %d bytes\n", len(result.PDF)))
	if result.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", result.Location))
	}
	if len(result.Sections) == 0 {
		sb.WriteString("Sections:  (header only)")
	} else {
		sb.WriteString(fmt.Sprintf("Sections:  %s", strings.Join(result.Sections, ", ")))
	}

	p.printBox("EXPORT COMPLETE", sb.String())
}

func itemLine(id, label string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%-8s  %s", short, label)
}
