package editor

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ClearAchievementsPrompt is shown before removing every achievement
const ClearAchievementsPrompt = "Are you sure you want to remove all achievements?"

var achievementLabels = map[string]string{"Title": "Title"}

// Achievements edits the achievements collection
type Achievements struct {
	list[types.Achievement]
	staging[types.Achievement]

	draft types.Achievement
}

// NewAchievements creates an editor over items that publishes changes through update
func NewAchievements(items []types.Achievement, update func([]types.Achievement), newID IDFunc) *Achievements {
	return &Achievements{
		list: newList(items, update, func(a types.Achievement) string { return a.ID }, newID),
	}
}

// Draft returns the fields being authored
func (e *Achievements) Draft() types.Achievement {
	return e.draft
}

// SetDraft replaces the draft fields. The id is ignored.
func (e *Achievements) SetDraft(d types.Achievement) {
	d.ID = ""
	e.draft = d
}

// Edit switches to edit mode for id, or to create mode when id is "".
// An unknown id leaves the editor in create mode with a blank draft.
func (e *Achievements) Edit(id string) {
	e.draft = types.Achievement{}
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
func (e *Achievements) CancelEdit() {
	e.Edit("")
}

// Save validates the trimmed draft and commits it, replacing the edited
// entity in place or appending a new one. If the edited entity was removed
// meanwhile, Save fails and keeps the draft; saving again appends it.
func (e *Achievements) Save() (types.Achievement, error) {
	item := e.trimmedDraft()
	if err := item.Validate(); err != nil {
		return types.Achievement{}, newValidationError(types.SectionAchievements, "Please enter an achievement title", err, achievementLabels)
	}

	if e.editingID != "" {
		item.ID = e.editingID
		if !e.replace(e.editingID, item) {
			e.editingID = ""
			return types.Achievement{}, editedGone(types.SectionAchievements)
		}
	} else {
		item.ID = e.newID()
		e.appendItems(item)
	}

	e.Edit("")
	return item, nil
}

// trimmedDraft is the draft with surrounding whitespace removed, as committed
func (e *Achievements) trimmedDraft() types.Achievement {
	return types.Achievement{
		Title:       strings.TrimSpace(e.draft.Title),
		Description: strings.TrimSpace(e.draft.Description),
	}
}

// StageDraft moves the trimmed draft into the staging buffer
func (e *Achievements) StageDraft() error {
	item := e.trimmedDraft()
	if err := item.Validate(); err != nil {
		return newValidationError(types.SectionAchievements, "Please enter an achievement title", err, achievementLabels)
	}
	e.push(item)
	e.draft = types.Achievement{}
	return nil
}

// CommitStaged appends every staged achievement with a fresh id, in staged order.
// It returns the number committed; an empty buffer is a no-op.
func (e *Achievements) CommitStaged() int {
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

// ClearAll empties the collection once confirmer agrees
func (e *Achievements) ClearAll(confirmer Confirmer) bool {
	return e.clearAll(confirmer, ClearAchievementsPrompt)
}
