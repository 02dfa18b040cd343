package rendering

import (
	_ "embed"
	"errors"
	"html/template"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// ExportWidth is the fixed content width of the export tree in CSS pixels
const ExportWidth = 800

//go:embed templates/resume.html.tmpl
var defaultTemplate string

var (
	defaultOnce sync.Once
	defaultTmpl *template.Template
	defaultErr  error
)

// htmlData is the value passed to the export template
type htmlData struct {
	Layout
	Width int
}

// RenderHTML renders the self-contained export tree of doc
func RenderHTML(doc *types.ResumeDocument) (string, error) {
	defaultOnce.Do(func() {
		defaultTmpl, defaultErr = parseTemplate("resume", defaultTemplate)
	})
	if defaultErr != nil {
		return "", defaultErr
	}
	return execute(defaultTmpl, doc)
}

// RenderHTMLWithTemplate renders doc through the template file at templatePath
func RenderHTMLWithTemplate(doc *types.ResumeDocument, templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &Error{Op: OpRead, Template: templatePath, Err: ErrTemplateNotFound}
	}
	if err != nil {
		return "", &Error{Op: OpRead, Template: templatePath, Err: err}
	}

	tmpl, err := parseTemplate(templatePath, string(content))
	if err != nil {
		return "", err
	}
	return execute(tmpl, doc)
}

func parseTemplate(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, &Error{Op: OpParse, Template: name, Err: err}
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, doc *types.ResumeDocument) (string, error) {
	data := htmlData{Layout: Project(doc), Width: ExportWidth}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &Error{Op: OpExecute, Template: tmpl.Name(), Err: err}
	}
	return result.String(), nil
}
