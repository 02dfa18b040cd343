package export

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultFileName is used when the document has no name
const DefaultFileName = "resume.pdf"

// Result describes a finished export
type Result struct {
	FileName string
	PDF      []byte
	Location string
	Sections []string
}

// Exporter runs the render, rasterize, package and deliver pipeline.
// At most one export runs at a time.
type Exporter struct {
	mu         sync.Mutex
	rasterizer Rasterizer
	sink       Sink
	template   string
	verbose    bool
}

// Option configures an Exporter
type Option func(*Exporter)

// WithSink delivers every finished PDF to sink
func WithSink(sink Sink) Option {
	return func(e *Exporter) {
		e.sink = sink
	}
}

// WithTemplate renders the export tree from the html/template file at path
// instead of the built-in layout
func WithTemplate(path string) Option {
	return func(e *Exporter) {
		e.template = path
	}
}

// WithVerbose enables [EXPORT] logging
func WithVerbose(verbose bool) Option {
	return func(e *Exporter) {
		e.verbose = verbose
	}
}

// NewExporter creates an exporter that rasterizes with r
func NewExporter(r Rasterizer, opts ...Option) *Exporter {
	e := &Exporter{rasterizer: r}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export produces the PDF of doc. A call made while another export is
// running fails with ErrExportInProgress.
func (e *Exporter) Export(ctx context.Context, doc *types.ResumeDocument) (*Result, error) {
	if !e.mu.TryLock() {
		return nil, ErrExportInProgress
	}
	defer e.mu.Unlock()

	html, err := e.render(doc)
	if err != nil {
		return nil, &Error{Stage: StageRender, Cause: err}
	}
	if err := rendering.CheckParity(doc, html); err != nil {
		return nil, &Error{Stage: StageRender, Cause: err}
	}

	snapshot, err := e.rasterizer.Rasterize(ctx, html, rendering.ExportWidth)
	if err != nil {
		return nil, &Error{Stage: StageRasterize, Cause: err}
	}

	data, err := Package(snapshot)
	if err != nil {
		return nil, &Error{Stage: StagePackage, Cause: err}
	}
	if err := VerifyPDF(data); err != nil {
		return nil, &Error{Stage: StagePackage, Cause: err}
	}

	result := &Result{
		FileName: FileName(doc),
		PDF:      data,
		Sections: rendering.Project(doc).SectionTitles(),
	}

	if e.sink != nil {
		location, err := e.sink.Deliver(ctx, result.FileName, data)
		if err != nil {
			return nil, &Error{Stage: StageDeliver, Cause: err}
		}
		result.Location = location
	}

	if e.verbose {
		log.Printf("[EXPORT] Exported %s (%d bytes)", result.FileName, len(data))
	}
	return result, nil
}

func (e *Exporter) render(doc *types.ResumeDocument) (string, error) {
	if e.template != "" {
		return rendering.RenderHTMLWithTemplate(doc, e.template)
	}
	return rendering.RenderHTML(doc)
}

// FileName returns "<name>.pdf", or resume.pdf when the name is blank.
// Path separators in the name are replaced.
func FileName(doc *types.ResumeDocument) string {
	if doc == nil {
		return DefaultFileName
	}
	name := strings.TrimSpace(doc.PersonalInfo.Name)
	if name == "" {
		return DefaultFileName
	}
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return name + ".pdf"
}
