package builder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister records saves and fails on demand
type fakePersister struct {
	loaded   *types.ResumeDocument
	loadErr  error
	saveErr  error
	clearErr error
	saves    []*types.ResumeDocument
	clears   int
	onSaved  func()
}

func (f *fakePersister) Load(context.Context) (*types.ResumeDocument, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) Save(_ context.Context, doc *types.ResumeDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, doc)
	if f.onSaved != nil {
		f.onSaved()
	}
	return nil
}

func (f *fakePersister) Clear(context.Context) error {
	f.clears++
	return f.clearErr
}

func (f *fakePersister) OnSaved(fn func()) {
	f.onSaved = fn
}

func sequentialIDs(prefix string) editor.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func mounted(t *testing.T, p Persister) *Builder {
	t.Helper()
	b := New(p, WithIDFunc(sequentialIDs("id")))
	require.NoError(t, b.Mount(context.Background()))
	return b
}

func TestMount_AdoptsPersistedDocument(t *testing.T) {
	persisted := types.NewDocument()
	persisted.PersonalInfo.Name = "Jane Doe"
	persisted.Skills = []types.Skill{{ID: "s1", Name: "Go"}}
	p := &fakePersister{loaded: persisted}

	b := New(p)
	assert.False(t, b.Ready())
	require.NoError(t, b.Mount(context.Background()))
	assert.True(t, b.Ready())

	doc := b.Document()
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.Name)
	assert.Equal(t, []types.Skill{{ID: "s1", Name: "Go"}}, doc.Skills)
	assert.NotNil(t, doc.Achievements)

	// Editors see the loaded collections
	require.NoError(t, b.Edit(func(e *Editors) error {
		assert.Equal(t, "Jane Doe", e.PersonalInfo.Info().Name)
		assert.Len(t, e.Skills.Items(), 1)
		return nil
	}))
}

func TestMount_AbsentKeepsDefaults(t *testing.T) {
	b := mounted(t, &fakePersister{})
	assert.True(t, b.Document().IsEmpty())
	assert.Empty(t, b.Banner())
}

func TestMount_ReadFailureSetsBannerAndKeepsDefaults(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("disk gone")}
	b := New(p)

	err := b.Mount(context.Background())
	require.Error(t, err)
	assert.True(t, b.Ready())
	assert.Equal(t, LoadErrorMessage, b.Banner())
	assert.True(t, b.Document().IsEmpty())
}

func TestUpdateSection_NotPersistedBeforeMount(t *testing.T) {
	p := &fakePersister{}
	b := New(p)

	require.NoError(t, b.UpdateSection(types.SectionSkills, []types.Skill{{ID: "s1", Name: "Go"}}))
	assert.Empty(t, p.saves)
	assert.Len(t, b.Document().Skills, 1)
}

func TestUpdateSection_ReplacesOnlyNamedSection(t *testing.T) {
	persisted := types.NewDocument()
	persisted.PersonalInfo.Name = "Jane Doe"
	persisted.Achievements = []types.Achievement{{ID: "a1", Title: "Shipped"}}
	persisted.Education = []types.Education{{ID: "e1", Degree: "BSc", Institution: "MIT", StartDate: "2010", EndDate: "2014"}}
	p := &fakePersister{loaded: persisted}
	b := mounted(t, p)

	require.NoError(t, b.UpdateSection(types.SectionSkills, []types.Skill{{ID: "s1", Name: "Go", Level: types.LevelExpert}}))

	doc := b.Document()
	assert.Equal(t, persisted.PersonalInfo, doc.PersonalInfo)
	assert.Equal(t, persisted.Achievements, doc.Achievements)
	assert.Equal(t, persisted.Education, doc.Education)
	assert.Equal(t, []types.Skill{{ID: "s1", Name: "Go", Level: types.LevelExpert}}, doc.Skills)

	require.Len(t, p.saves, 1)
	assert.Equal(t, doc, p.saves[0])
}

func TestUpdateSection_RejectsWrongType(t *testing.T) {
	b := mounted(t, &fakePersister{})

	err := b.UpdateSection(types.SectionSkills, []types.Achievement{})
	var sectionErr *SectionError
	require.ErrorAs(t, err, &sectionErr)
	assert.Equal(t, types.SectionSkills, sectionErr.Section)

	err = b.UpdateSection(types.Section("hobbies"), nil)
	require.ErrorAs(t, err, &sectionErr)
}

func TestUpdateSection_RejectsDuplicateIDs(t *testing.T) {
	p := &fakePersister{}
	b := mounted(t, p)

	err := b.UpdateSection(types.SectionSkills, []types.Skill{{ID: "a", Name: "Go"}, {ID: "a", Name: "Rust"}})
	var sectionErr *SectionError
	require.ErrorAs(t, err, &sectionErr)
	assert.Equal(t, types.SectionSkills, sectionErr.Section)
	assert.Contains(t, sectionErr.Message, `duplicate id "a"`)
	assert.Empty(t, b.Document().Skills)
	assert.Empty(t, p.saves)

	err = b.UpdateSection(types.SectionWorkExperience, []types.WorkExperience{
		{ID: "w", Title: "Engineer", Company: "Acme", StartDate: "2020"},
		{ID: "w", Title: "Lead", Company: "Acme", StartDate: "2022"},
	})
	require.ErrorAs(t, err, &sectionErr)
}

func TestUpdateSection_EditingOneOfDistinctIDsLeavesTheOther(t *testing.T) {
	b := mounted(t, &fakePersister{})
	require.NoError(t, b.UpdateSection(types.SectionSkills, []types.Skill{{ID: "a", Name: "Go"}, {ID: "b", Name: "Rust"}}))

	require.NoError(t, b.Edit(func(e *Editors) error {
		e.Skills.Edit("a")
		e.Skills.SetDraft(types.Skill{Name: "Zig"})
		_, err := e.Skills.Save()
		return err
	}))

	assert.Equal(t, []types.Skill{{ID: "a", Name: "Zig"}, {ID: "b", Name: "Rust"}}, b.Document().Skills)
}

func TestFirstDuplicate(t *testing.T) {
	_, dup := firstDuplicate([]string{"", "", "a", "b"})
	assert.False(t, dup, "blank ids are not duplicates")

	id, dup := firstDuplicate([]string{"a", "b", "c", "b", "a"})
	assert.True(t, dup)
	assert.Equal(t, "b", id)
}

func TestUpdateSection_DocumentIsNotAliased(t *testing.T) {
	b := mounted(t, &fakePersister{})
	skills := []types.Skill{{ID: "s1", Name: "Go"}}
	require.NoError(t, b.UpdateSection(types.SectionSkills, skills))

	skills[0].Name = "Rust"
	doc := b.Document()
	doc.Skills[0].Name = "Zig"

	assert.Equal(t, "Go", b.Document().Skills[0].Name)
}

func TestEdit_EditorSavePersists(t *testing.T) {
	p := &fakePersister{}
	b := mounted(t, p)

	require.NoError(t, b.Edit(func(e *Editors) error {
		e.Achievements.SetDraft(types.Achievement{Title: "Led migration"})
		_, err := e.Achievements.Save()
		return err
	}))

	doc := b.Document()
	require.Len(t, doc.Achievements, 1)
	assert.Equal(t, "id-1", doc.Achievements[0].ID)
	assert.Equal(t, "Led migration", doc.Achievements[0].Title)
	require.Len(t, p.saves, 1)
}

func TestSaveFailure_SetsBannerWithoutRollback(t *testing.T) {
	p := &fakePersister{}
	b := mounted(t, p)
	p.saveErr = errors.New("quota exceeded")

	require.NoError(t, b.UpdateSection(types.SectionPersonalInfo, types.PersonalInfo{Name: "Jane"}))
	assert.Equal(t, SaveErrorMessage, b.Banner())
	assert.Equal(t, "Jane", b.Document().PersonalInfo.Name)

	// A later successful write clears the banner
	p.saveErr = nil
	require.NoError(t, b.UpdateSection(types.SectionPersonalInfo, types.PersonalInfo{Name: "Jane Doe"}))
	assert.Empty(t, b.Banner())
}

func TestReset_RequiresConfirmation(t *testing.T) {
	persisted := types.NewDocument()
	persisted.PersonalInfo.Name = "Jane"
	p := &fakePersister{loaded: persisted}
	b := mounted(t, p)

	done, err := b.Reset(context.Background(), editor.ConfirmFunc(func(prompt string) bool {
		assert.Equal(t, ResetPrompt, prompt)
		return false
	}))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "Jane", b.Document().PersonalInfo.Name)
	assert.Zero(t, p.clears)
}

func TestReset_ClearsDocumentEditorsAndStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	adapter := storage.NewAdapter(store)
	b := New(adapter, WithIDFunc(sequentialIDs("id")))
	require.NoError(t, b.Mount(ctx))

	require.NoError(t, b.Edit(func(e *Editors) error {
		e.Skills.BulkAdd("Go, SQL")
		e.Achievements.SetDraft(types.Achievement{Title: "Staged only"})
		return e.Achievements.StageDraft()
	}))
	_, found, err := store.Get(ctx, storage.DocumentKey)
	require.NoError(t, err)
	require.True(t, found)

	done, err := b.Reset(ctx, editor.AlwaysConfirm)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, b.Document().IsEmpty())

	_, found, err = store.Get(ctx, storage.DocumentKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Edit(func(e *Editors) error {
		assert.Empty(t, e.Skills.Items())
		assert.Empty(t, e.Achievements.Staged())
		return nil
	}))
}

func TestSubscribe_DeliversEventsAfterUnlock(t *testing.T) {
	b := New(storage.NewAdapter(storage.NewMemoryStore()))

	var got []EventType
	unsubscribe := b.Subscribe(func(e Event) {
		got = append(got, e.Type)
		// Reading the document from a subscriber must not deadlock
		_ = b.Document()
	})

	require.NoError(t, b.Mount(context.Background()))
	require.NoError(t, b.UpdateSection(types.SectionSkills, []types.Skill{{ID: "s1", Name: "Go"}}))
	_, err := b.Reset(context.Background(), editor.AlwaysConfirm)
	require.NoError(t, err)

	assert.Equal(t, []EventType{EventLoaded, EventChanged, EventSaved, EventReset}, got)

	unsubscribe()
	unsubscribe()
	require.NoError(t, b.UpdateSection(types.SectionSkills, []types.Skill{}))
	assert.Len(t, got, 4)
}

func TestSubscribe_SaveFailedEvent(t *testing.T) {
	p := &fakePersister{}
	b := mounted(t, p)
	p.saveErr = errors.New("boom")

	var events []Event
	b.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, b.UpdateSection(types.SectionEducation, []types.Education{}))
	require.Len(t, events, 2)
	assert.Equal(t, EventChanged, events[0].Type)
	assert.Equal(t, Event{Type: EventSaveFailed, Message: SaveErrorMessage}, events[1])
}
