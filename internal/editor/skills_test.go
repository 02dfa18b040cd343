package editor

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkills_BulkAdd(t *testing.T) {
	rec := &recorder[types.Skill]{}
	ed := NewSkills(nil, rec.update, sequentialIDs("s"))

	added := ed.BulkAdd("JavaScript, React,  , Node.js")

	require.Len(t, added, 3)
	assert.Equal(t, []types.Skill{
		{ID: "s-1", Name: "JavaScript"},
		{ID: "s-2", Name: "React"},
		{ID: "s-3", Name: "Node.js"},
	}, rec.last())
	for _, skill := range rec.last() {
		assert.Equal(t, types.LevelUnset, skill.Level)
	}
}

func TestSkills_BulkAddKeepsDuplicates(t *testing.T) {
	rec := &recorder[types.Skill]{}
	ed := NewSkills([]types.Skill{{ID: "go", Name: "Go"}}, rec.update, sequentialIDs("s"))

	ed.BulkAdd("Go, go, Go")

	names := make([]string, 0, len(rec.last()))
	for _, skill := range rec.last() {
		names = append(names, skill.Name)
	}
	assert.Equal(t, []string{"Go", "Go", "go", "Go"}, names)
}

func TestSkills_BulkAddBlankIsNoop(t *testing.T) {
	rec := &recorder[types.Skill]{}
	ed := NewSkills(nil, rec.update, nil)

	assert.Nil(t, ed.BulkAdd(" , ,, "))
	assert.Nil(t, ed.BulkAdd(""))
	assert.Empty(t, rec.calls)
}

func TestSkills_SaveWithLevel(t *testing.T) {
	rec := &recorder[types.Skill]{}
	ed := NewSkills(nil, rec.update, sequentialIDs("s"))

	ed.SetDraft(types.Skill{Name: "Go", Level: types.LevelExpert})
	_, err := ed.Save()
	require.NoError(t, err)
	assert.Equal(t, []types.Skill{{ID: "s-1", Name: "Go", Level: types.LevelExpert}}, rec.last())

	ed.SetDraft(types.Skill{Name: "Rust", Level: "Wizard"})
	_, err = ed.Save()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "Proficiency Level")
	assert.Len(t, rec.calls, 1)
}

func TestSkills_EditClearsLevel(t *testing.T) {
	rec := &recorder[types.Skill]{}
	ed := NewSkills([]types.Skill{{ID: "1", Name: "Go", Level: types.LevelAdvanced}}, rec.update, nil)

	ed.Edit("1")
	assert.Equal(t, types.LevelAdvanced, ed.Draft().Level)
	ed.SetDraft(types.Skill{Name: "Go"})
	_, err := ed.Save()
	require.NoError(t, err)

	assert.Equal(t, []types.Skill{{ID: "1", Name: "Go"}}, rec.last())
}

func TestSkills_StageAndCommit(t *testing.T) {
	rec := &recorder[types.Skill]{}
	ed := NewSkills(nil, rec.update, sequentialIDs("s"))

	ed.SetDraft(types.Skill{Name: " SQL ", Level: types.LevelBeginner})
	require.NoError(t, ed.StageDraft())
	ed.SetDraft(types.Skill{Name: "Docker"})
	require.NoError(t, ed.StageDraft())
	assert.Equal(t, types.Skill{}, ed.Draft())

	ed.SetDraft(types.Skill{Name: ""})
	assert.Error(t, ed.StageDraft())

	assert.Equal(t, 2, ed.CommitStaged())
	assert.Equal(t, []types.Skill{
		{ID: "s-1", Name: "SQL", Level: types.LevelBeginner},
		{ID: "s-2", Name: "Docker"},
	}, rec.last())
	assert.Zero(t, ed.CommitStaged())
	assert.Len(t, rec.calls, 1)
}

func TestSkills_DiscardStaged(t *testing.T) {
	ed := NewSkills(nil, nil, nil)
	ed.SetDraft(types.Skill{Name: "Go"})
	require.NoError(t, ed.StageDraft())

	ed.DiscardStaged()

	assert.Empty(t, ed.Staged())
	assert.Zero(t, ed.CommitStaged())
}

func TestSkills_ClearAllPrompt(t *testing.T) {
	ed := NewSkills([]types.Skill{{ID: "1", Name: "Go"}}, nil, nil)
	var prompt string
	ed.ClearAll(ConfirmFunc(func(p string) bool { prompt = p; return false }))

	assert.Equal(t, ClearSkillsPrompt, prompt)
	assert.Equal(t, 1, ed.Len())
}

func TestSkills_SaveTrimsName(t *testing.T) {
	ed := NewSkills(nil, nil, sequentialIDs("s"))
	ed.SetDraft(types.Skill{Name: "  Go ", Level: types.LevelExpert})

	saved, err := ed.Save()
	require.NoError(t, err)
	assert.Equal(t, types.Skill{ID: "s-1", Name: "Go", Level: types.LevelExpert}, saved)
}
