package editor

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// ClearEducationPrompt is shown before removing every education entry
const ClearEducationPrompt = "Are you sure you want to remove all education entries?"

var educationLabels = map[string]string{
	"Degree":      "Degree",
	"Institution": "Institution",
	"StartDate":   "Start Date",
	"EndDate":     "End Date",
}

// Education edits the education collection
type Education struct {
	list[types.Education]

	draft types.Education
}

// NewEducation creates an editor over items that publishes changes through update
func NewEducation(items []types.Education, update func([]types.Education), newID IDFunc) *Education {
	return &Education{
		list: newList(items, update, func(e types.Education) string { return e.ID }, newID),
	}
}

// Draft returns the fields being authored
func (e *Education) Draft() types.Education {
	return e.draft
}

// SetDraft replaces the draft fields. The id is ignored.
func (e *Education) SetDraft(d types.Education) {
	d.ID = ""
	e.draft = d
}

// Edit switches to edit mode for id, or to create mode when id is "".
// An unknown id leaves the editor in create mode with a blank draft.
func (e *Education) Edit(id string) {
	e.draft = types.Education{}
	e.editingID = ""
	if id == "" {
		return
	}
	if existing, ok := e.find(id); ok {
		e.editingID = id
		e.draft = existing
		e.draft.ID = ""
	}
}

// CancelEdit discards the draft and returns to create mode
func (e *Education) CancelEdit() {
	e.Edit("")
}

// Save validates the draft and commits it
func (e *Education) Save() (types.Education, error) {
	item := e.draft
	if err := item.Validate(); err != nil {
		return types.Education{}, newValidationError(types.SectionEducation,
			"Please fill in all required fields: Degree, Institution, Start Date, and End Date", err, educationLabels)
	}

	if e.editingID != "" {
		item.ID = e.editingID
		if !e.replace(e.editingID, item) {
			e.editingID = ""
			return types.Education{}, editedGone(types.SectionEducation)
		}
	} else {
		item.ID = e.newID()
		e.appendItems(item)
	}

	e.Edit("")
	return item, nil
}

// ClearAll empties the collection once confirmer agrees
func (e *Education) ClearAll(confirmer Confirmer) bool {
	return e.clearAll(confirmer, ClearEducationPrompt)
}
