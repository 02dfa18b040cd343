// Package builder owns the canonical resume document: it wires the section
// editors to the document, persists every change and exposes reset.
package builder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
)

// Banner messages shown when persistence fails. Neither blocks editing.
const (
	SaveErrorMessage = "Failed to save your data. Please try again."
	LoadErrorMessage = "Failed to load your saved data. Starting with an empty resume."
)

// ResetPrompt is shown before the whole document is cleared
const ResetPrompt = "Are you sure you want to clear all resume data? This cannot be undone."

// Persister loads, saves and clears the document. OnSaved registers the hook
// fired after each successful save.
type Persister interface {
	Load(ctx context.Context) (*types.ResumeDocument, error)
	Save(ctx context.Context, doc *types.ResumeDocument) error
	Clear(ctx context.Context) error
	OnSaved(fn func())
}

// Editors groups the five section editors of one document
type Editors struct {
	PersonalInfo   *editor.PersonalInfo
	Achievements   *editor.Achievements
	WorkExperience *editor.WorkExperience
	Education      *editor.Education
	Skills         *editor.Skills
}

// Builder is the document orchestrator
type Builder struct {
	mu sync.Mutex

	doc       *types.ResumeDocument
	ready     bool
	banner    string
	persister Persister
	editors   *Editors
	events    *bus
	pending   []Event

	newID       editor.IDFunc
	saveTimeout time.Duration
	verbose     bool
}

// Option configures a Builder
type Option func(*Builder)

// WithIDFunc sets the id generator handed to the list editors
func WithIDFunc(fn editor.IDFunc) Option {
	return func(b *Builder) {
		b.newID = fn
	}
}

// WithSaveTimeout bounds each persistence write
func WithSaveTimeout(d time.Duration) Option {
	return func(b *Builder) {
		b.saveTimeout = d
	}
}

// WithVerbose enables [BUILDER] logging
func WithVerbose(verbose bool) Option {
	return func(b *Builder) {
		b.verbose = verbose
	}
}

// New creates an orchestrator holding an empty document. Call Mount to load
// the persisted copy; changes are not persisted until then.
func New(persister Persister, opts ...Option) *Builder {
	b := &Builder{
		doc:         types.NewDocument(),
		persister:   persister,
		events:      newBus(),
		newID:       editor.DefaultIDFunc,
		saveTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.editors = &Editors{
		PersonalInfo: editor.NewPersonalInfo(b.doc.PersonalInfo, func(v types.PersonalInfo) {
			b.apply(types.SectionPersonalInfo, v)
		}),
		Achievements: editor.NewAchievements(b.doc.Achievements, func(v []types.Achievement) {
			b.apply(types.SectionAchievements, v)
		}, b.newID),
		WorkExperience: editor.NewWorkExperience(b.doc.WorkExperience, func(v []types.WorkExperience) {
			b.apply(types.SectionWorkExperience, v)
		}, b.newID),
		Education: editor.NewEducation(b.doc.Education, func(v []types.Education) {
			b.apply(types.SectionEducation, v)
		}, b.newID),
		Skills: editor.NewSkills(b.doc.Skills, func(v []types.Skill) {
			b.apply(types.SectionSkills, v)
		}, b.newID),
	}

	if persister != nil {
		// Saves only happen while b.mu is held, so the event is queued
		persister.OnSaved(func() {
			b.pending = append(b.pending, Event{Type: EventSaved, Message: "Changes saved"})
		})
	}
	return b
}

// Mount loads the persisted document, adopting it when present, and marks
// the document ready. A read failure keeps the defaults and sets the banner.
func (b *Builder) Mount(ctx context.Context) error {
	b.mu.Lock()
	defer b.unlockAndFlush()

	var loadErr error
	if b.persister != nil {
		doc, err := b.persister.Load(ctx)
		if err != nil {
			loadErr = err
			b.banner = LoadErrorMessage
			log.Printf("[BUILDER] Error loading data: %v", err)
		} else if doc != nil {
			doc.Normalize()
			b.doc = doc
			b.syncEditors()
		}
	}
	b.ready = true

	if b.verbose {
		log.Printf("[BUILDER] Document ready (%d achievements, %d jobs, %d education, %d skills)",
			len(b.doc.Achievements), len(b.doc.WorkExperience), len(b.doc.Education), len(b.doc.Skills))
	}
	b.pending = append(b.pending, Event{Type: EventLoaded})
	return loadErr
}

// Ready reports whether Mount has completed
func (b *Builder) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Document returns a deep copy of the canonical document
func (b *Builder) Document() *types.ResumeDocument {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Clone()
}

// Banner returns the current persistence error message, or ""
func (b *Builder) Banner() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banner
}

// Subscribe registers fn for orchestrator events and returns its unsubscribe func.
// fn runs synchronously on the goroutine that caused the event, after the
// document lock is released.
func (b *Builder) Subscribe(fn func(Event)) func() {
	return b.events.subscribe(fn)
}

// Edit runs fn with exclusive access to the section editors. Every editor
// mutation made inside fn is applied to the document and persisted.
func (b *Builder) Edit(fn func(e *Editors) error) error {
	b.mu.Lock()
	defer b.unlockAndFlush()
	return fn(b.editors)
}

// UpdateSection replaces exactly one section of the document with value.
// value must have the section's type (e.g. []types.Skill for SectionSkills).
func (b *Builder) UpdateSection(section types.Section, value any) error {
	b.mu.Lock()
	defer b.unlockAndFlush()

	if err := checkSectionValue(section, value); err != nil {
		return err
	}
	b.apply(section, value)
	b.syncEditor(section)
	return nil
}

// Reset replaces the document with defaults and erases the persisted copy
// once confirmer agrees. It reports whether the reset happened.
func (b *Builder) Reset(ctx context.Context, confirmer editor.Confirmer) (bool, error) {
	if confirmer == nil || !confirmer.Confirm(ResetPrompt) {
		return false, nil
	}

	b.mu.Lock()
	defer b.unlockAndFlush()

	b.doc = types.NewDocument()
	b.syncEditors()
	b.editors.Achievements.DiscardStaged()
	b.editors.Skills.DiscardStaged()

	var clearErr error
	if b.persister != nil {
		if err := b.persister.Clear(ctx); err != nil {
			clearErr = err
			b.banner = SaveErrorMessage
			log.Printf("[BUILDER] Error clearing data: %v", err)
		} else {
			b.banner = ""
		}
	}
	b.pending = append(b.pending, Event{Type: EventReset})
	return true, clearErr
}

// unlockAndFlush releases b.mu and then delivers the queued events
func (b *Builder) unlockAndFlush() {
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, e := range pending {
		b.events.publish(e)
	}
}

// apply installs value as the new section and persists the document.
// The caller holds b.mu.
func (b *Builder) apply(section types.Section, value any) {
	next := *b.doc
	switch section {
	case types.SectionPersonalInfo:
		next.PersonalInfo = value.(types.PersonalInfo)
	case types.SectionAchievements:
		next.Achievements = append([]types.Achievement{}, value.([]types.Achievement)...)
	case types.SectionWorkExperience:
		next.WorkExperience = types.CloneWorkExperience(value.([]types.WorkExperience))
	case types.SectionEducation:
		next.Education = append([]types.Education{}, value.([]types.Education)...)
	case types.SectionSkills:
		next.Skills = append([]types.Skill{}, value.([]types.Skill)...)
	}
	next.Normalize()
	b.doc = &next

	if b.verbose {
		log.Printf("[BUILDER] Updated section %s", section)
	}
	b.pending = append(b.pending, Event{Type: EventChanged, Message: string(section)})
	if b.ready {
		b.persist()
	}
}

// persist writes the current document. A failure sets the banner but keeps
// the in-memory change. The caller holds b.mu.
func (b *Builder) persist() {
	if b.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.saveTimeout)
	defer cancel()

	if err := b.persister.Save(ctx, b.doc.Clone()); err != nil {
		b.banner = SaveErrorMessage
		log.Printf("[BUILDER] Error saving data: %v", err)
		b.pending = append(b.pending, Event{Type: EventSaveFailed, Message: SaveErrorMessage})
		return
	}
	b.banner = ""
}

// syncEditors pushes every section into its editor. The caller holds b.mu.
func (b *Builder) syncEditors() {
	for _, section := range types.AllSections() {
		b.syncEditor(section)
	}
}

func (b *Builder) syncEditor(section types.Section) {
	switch section {
	case types.SectionPersonalInfo:
		b.editors.PersonalInfo.Sync(b.doc.PersonalInfo)
	case types.SectionAchievements:
		b.editors.Achievements.Sync(b.doc.Achievements)
	case types.SectionWorkExperience:
		b.editors.WorkExperience.Sync(b.doc.WorkExperience)
	case types.SectionEducation:
		b.editors.Education.Sync(b.doc.Education)
	case types.SectionSkills:
		b.editors.Skills.Sync(b.doc.Skills)
	}
}

func checkSectionValue(section types.Section, value any) error {
	ok := false
	var ids []string
	switch section {
	case types.SectionPersonalInfo:
		_, ok = value.(types.PersonalInfo)
	case types.SectionAchievements:
		var items []types.Achievement
		items, ok = value.([]types.Achievement)
		ids = idsOf(items, func(a types.Achievement) string { return a.ID })
	case types.SectionWorkExperience:
		var items []types.WorkExperience
		items, ok = value.([]types.WorkExperience)
		ids = idsOf(items, func(w types.WorkExperience) string { return w.ID })
	case types.SectionEducation:
		var items []types.Education
		items, ok = value.([]types.Education)
		ids = idsOf(items, func(e types.Education) string { return e.ID })
	case types.SectionSkills:
		var items []types.Skill
		items, ok = value.([]types.Skill)
		ids = idsOf(items, func(s types.Skill) string { return s.ID })
	default:
		return &SectionError{Section: section, Message: "unknown section"}
	}
	if !ok {
		return &SectionError{Section: section, Message: "value has the wrong type"}
	}
	if id, dup := firstDuplicate(ids); dup {
		return &SectionError{Section: section, Message: fmt.Sprintf("duplicate id %q", id)}
	}
	return nil
}

func idsOf[T any](items []T, id func(T) string) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}

// firstDuplicate returns the first non-empty id that appears twice
func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
