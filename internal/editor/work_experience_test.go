package editor

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWorkDraft() types.WorkExperience {
	return types.WorkExperience{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2021-03",
		EndDate:   "2023-04",
	}
}

func TestWorkExperience_ResponsibilitiesBecomePartOfEntityOnSave(t *testing.T) {
	rec := &recorder[types.WorkExperience]{}
	ed := NewWorkExperience(nil, rec.update, sequentialIDs("w"))

	ed.SetDraft(validWorkDraft())
	require.NoError(t, ed.AddResponsibility("Design APIs"))
	require.NoError(t, ed.AddResponsibility("Review code"))
	require.NoError(t, ed.AddResponsibility("Mentor"))
	assert.ErrorIs(t, ed.AddResponsibility("   "), ErrEmptyResponsibility)
	require.NoError(t, ed.RemoveResponsibility(1))

	var indexErr *IndexError
	assert.ErrorAs(t, ed.RemoveResponsibility(5), &indexErr)
	assert.Empty(t, rec.calls, "responsibilities are draft-local until save")

	_, err := ed.Save()
	require.NoError(t, err)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, []string{"Design APIs", "Mentor"}, rec.last()[0].Responsibilities)
	assert.Empty(t, ed.Draft().Responsibilities)
}

func TestWorkExperience_CurrentStoresPresent(t *testing.T) {
	rec := &recorder[types.WorkExperience]{}
	ed := NewWorkExperience(nil, rec.update, sequentialIDs("w"))

	ed.SetDraft(validWorkDraft())
	ed.SetCurrent(true)
	assert.True(t, ed.EndDateDisabled())
	assert.Empty(t, ed.Draft().EndDate)

	saved, err := ed.Save()
	require.NoError(t, err)
	assert.Equal(t, types.PresentEndDate, saved.EndDate)
	assert.True(t, saved.Current)
}

func TestWorkExperience_EditCurrentLoadsBlankEndDate(t *testing.T) {
	existing := []types.WorkExperience{{
		ID: "w1", Title: "Engineer", Company: "Acme", StartDate: "2021-03",
		EndDate: types.PresentEndDate, Current: true, Responsibilities: []string{"Ship"},
	}}
	rec := &recorder[types.WorkExperience]{}
	ed := NewWorkExperience(existing, rec.update, nil)

	ed.Edit("w1")
	draft := ed.Draft()
	assert.Empty(t, draft.EndDate)
	assert.True(t, ed.EndDateDisabled())
	assert.Equal(t, []string{"Ship"}, draft.Responsibilities)

	// Unchecking current with an end date replaces the entity in place
	ed.SetCurrent(false)
	draft = ed.Draft()
	draft.EndDate = "2024-01"
	ed.SetDraft(draft)
	saved, err := ed.Save()
	require.NoError(t, err)

	assert.Equal(t, "w1", saved.ID)
	assert.Equal(t, "2024-01", rec.last()[0].EndDate)
	assert.False(t, rec.last()[0].Current)
}

func TestWorkExperience_MissingRequiredFields(t *testing.T) {
	rec := &recorder[types.WorkExperience]{}
	ed := NewWorkExperience(nil, rec.update, nil)

	ed.SetDraft(types.WorkExperience{Title: "Engineer"})
	_, err := ed.Save()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"Company", "Start Date"}, validationErr.Fields)
	assert.Empty(t, rec.calls)
}

func TestWorkExperience_DraftIsolation(t *testing.T) {
	existing := []types.WorkExperience{{
		ID: "w1", Title: "Engineer", Company: "Acme", StartDate: "2021-03",
		Responsibilities: []string{"Ship"},
	}}
	ed := NewWorkExperience(existing, nil, nil)

	ed.Edit("w1")
	require.NoError(t, ed.AddResponsibility("Extra"))

	assert.Equal(t, []string{"Ship"}, ed.Items()[0].Responsibilities)
	assert.Equal(t, []string{"Ship"}, existing[0].Responsibilities)
}
