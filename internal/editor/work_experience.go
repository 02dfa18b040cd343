package editor

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ClearWorkExperiencePrompt is shown before removing every work experience entry
const ClearWorkExperiencePrompt = "Are you sure you want to remove all work experience?"

var workExperienceLabels = map[string]string{
	"Title":     "Job Title",
	"Company":   "Company",
	"StartDate": "Start Date",
}

// WorkExperience edits the work experience collection
type WorkExperience struct {
	list[types.WorkExperience]

	draft types.WorkExperience
}

// NewWorkExperience creates an editor over items that publishes changes through update
func NewWorkExperience(items []types.WorkExperience, update func([]types.WorkExperience), newID IDFunc) *WorkExperience {
	return &WorkExperience{
		list: newList(types.CloneWorkExperience(items), update, func(w types.WorkExperience) string { return w.ID }, newID),
	}
}

// Items returns a deep copy of the committed collection
func (e *WorkExperience) Items() []types.WorkExperience {
	return types.CloneWorkExperience(e.items)
}

// Draft returns a copy of the fields being authored
func (e *WorkExperience) Draft() types.WorkExperience {
	d := e.draft
	d.Responsibilities = append([]string{}, e.draft.Responsibilities...)
	return d
}

// SetDraft replaces the draft fields. The id is ignored.
func (e *WorkExperience) SetDraft(d types.WorkExperience) {
	d.ID = ""
	d.Responsibilities = append([]string{}, d.Responsibilities...)
	e.draft = d
	if d.Current {
		e.draft.EndDate = ""
	}
}

// SetCurrent marks the draft as the candidate's current position, which
// disables the end date
func (e *WorkExperience) SetCurrent(current bool) {
	e.draft.Current = current
	if current {
		e.draft.EndDate = ""
	}
}

// EndDateDisabled reports whether the end-date input is disabled
func (e *WorkExperience) EndDateDisabled() bool {
	return e.draft.Current
}

// Edit switches to edit mode for id, or to create mode when id is "".
// A current position loads with a blank end date.
func (e *WorkExperience) Edit(id string) {
	e.draft = types.WorkExperience{Responsibilities: []string{}}
	e.editingID = ""
	if id == "" {
		return
	}
	if existing, ok := e.find(id); ok {
		e.editingID = id
		e.SetDraft(existing)
	}
}

// CancelEdit discards the draft and returns to create mode
func (e *WorkExperience) CancelEdit() {
	e.Edit("")
}

// AddResponsibility appends text to the draft's responsibilities
func (e *WorkExperience) AddResponsibility(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyResponsibility
	}
	next := make([]string, 0, len(e.draft.Responsibilities)+1)
	next = append(next, e.draft.Responsibilities...)
	e.draft.Responsibilities = append(next, text)
	return nil
}

// RemoveResponsibility deletes the draft responsibility at index
func (e *WorkExperience) RemoveResponsibility(index int) error {
	current := e.draft.Responsibilities
	if index < 0 || index >= len(current) {
		return &IndexError{Index: index, Len: len(current)}
	}
	next := make([]string, 0, len(current)-1)
	next = append(next, current[:index]...)
	e.draft.Responsibilities = append(next, current[index+1:]...)
	return nil
}

// Save validates the draft and commits it. A current position is stored
// with the Present end date.
func (e *WorkExperience) Save() (types.WorkExperience, error) {
	item := e.Draft()
	if err := item.Validate(); err != nil {
		return types.WorkExperience{}, newValidationError(types.SectionWorkExperience,
			"Please fill in all required fields: Job Title, Company, and Start Date", err, workExperienceLabels)
	}
	if item.Current {
		item.EndDate = types.PresentEndDate
	}

	if e.editingID != "" {
		item.ID = e.editingID
		if !e.replace(e.editingID, item) {
			e.editingID = ""
			return types.WorkExperience{}, editedGone(types.SectionWorkExperience)
		}
	} else {
		item.ID = e.newID()
		e.appendItems(item)
	}

	e.Edit("")
	return item, nil
}

// ClearAll empties the collection once confirmer agrees
func (e *WorkExperience) ClearAll(confirmer Confirmer) bool {
	return e.clearAll(confirmer, ClearWorkExperiencePrompt)
}
