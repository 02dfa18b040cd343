package rendering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/types"
)

// SectionTitles reads the section headings back out of an export tree
func SectionTitles(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Op: OpInspect, Err: err}
	}

	titles := []string{}
	doc.Find("div.section > h2").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, strings.TrimSpace(s.Text()))
	})
	return titles, nil
}

// HeaderName reads the header name back out of an export tree
func HeaderName(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &Error{Op: OpInspect, Err: err}
	}
	return strings.TrimSpace(doc.Find("#resume h1").First().Text()), nil
}

// CheckParity verifies that an export tree shows the same sections, in the
// same order, as the preview of doc
func CheckParity(doc *types.ResumeDocument, html string) error {
	got, err := SectionTitles(html)
	if err != nil {
		return err
	}
	want := Project(doc).SectionTitles()
	if !slices.Equal(got, want) {
		return &Error{Op: OpInspect, Err: fmt.Errorf("%w: got [%s], want [%s]",
			ErrSectionMismatch, strings.Join(got, ", "), strings.Join(want, ", "))}
	}
	return nil
}
