package editor

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ClearSkillsPrompt is shown before removing every skill
const ClearSkillsPrompt = "Are you sure you want to remove all skills?"

var skillLabels = map[string]string{"Name": "Skill Name", "Level": "Proficiency Level"}

// Skills edits the skills collection
type Skills struct {
	list[types.Skill]
	staging[types.Skill]

	draft types.Skill
}

// NewSkills creates an editor over items that publishes changes through update
func NewSkills(items []types.Skill, update func([]types.Skill), newID IDFunc) *Skills {
	return &Skills{
		list: newList(items, update, func(s types.Skill) string { return s.ID }, newID),
	}
}

// Draft returns the fields being authored
func (e *Skills) Draft() types.Skill {
	return e.draft
}

// SetDraft replaces the draft fields. The id is ignored.
func (e *Skills) SetDraft(d types.Skill) {
	d.ID = ""
	e.draft = d
}

// Edit switches to edit mode for id, or to create mode when id is "".
// An unknown id leaves the editor in create mode with a blank draft.
func (e *Skills) Edit(id string) {
	e.draft = types.Skill{}
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
func (e *Skills) CancelEdit() {
	e.Edit("")
}

func (e *Skills) validate(item types.Skill) error {
	if err := item.Validate(); err != nil {
		return newValidationError(types.SectionSkills, "Please enter a skill name", err, skillLabels)
	}
	return nil
}

// Save validates the draft and commits it
func (e *Skills) Save() (types.Skill, error) {
	item := types.Skill{Name: strings.TrimSpace(e.draft.Name), Level: e.draft.Level}
	if err := e.validate(item); err != nil {
		return types.Skill{}, err
	}

	if e.editingID != "" {
		item.ID = e.editingID
		if !e.replace(e.editingID, item) {
			e.editingID = ""
			return types.Skill{}, editedGone(types.SectionSkills)
		}
	} else {
		item.ID = e.newID()
		e.appendItems(item)
	}

	e.Edit("")
	return item, nil
}

// StageDraft moves the trimmed draft into the staging buffer
func (e *Skills) StageDraft() error {
	item := types.Skill{Name: strings.TrimSpace(e.draft.Name), Level: e.draft.Level}
	if err := e.validate(item); err != nil {
		return err
	}
	e.push(item)
	e.draft = types.Skill{}
	return nil
}

// CommitStaged appends every staged skill with a fresh id, in staged order
func (e *Skills) CommitStaged() int {
	staged := e.drain()
	if len(staged) == 0 {
		return 0
	}
	for i := range staged {
		staged[i].ID = e.newID()
	}
	e.appendItems(staged...)
	return len(staged)
}

// BulkAdd splits text on commas and appends one level-less skill per
// non-blank name, in input order. Duplicate names are kept.
func (e *Skills) BulkAdd(text string) []types.Skill {
	var added []types.Skill
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		added = append(added, types.Skill{ID: e.newID(), Name: name})
	}
	if len(added) == 0 {
		return nil
	}
	e.appendItems(added...)
	return added
}

// ClearAll empties the collection once confirmer agrees
func (e *Skills) ClearAll(confirmer Confirmer) bool {
	return e.clearAll(confirmer, ClearSkillsPrompt)
}
