package editor

import (
	"github.com/google/uuid"
)

// IDFunc generates identifiers for new entities
type IDFunc func() string

// DefaultIDFunc returns random UUIDs
func DefaultIDFunc() string {
	return uuid.NewString()
}

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AlwaysConfirm confirms every prompt
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// list holds a committed collection and the callback that publishes a
// replacement of it. Every mutation builds a new slice.
type list[T any] struct {
	items  []T
	update func([]T)
	idOf   func(T) string
	newID  IDFunc

	editingID string
}

func newList[T any](items []T, update func([]T), idOf func(T) string, newID IDFunc) list[T] {
	if newID == nil {
		newID = DefaultIDFunc
	}
	return list[T]{
		items:  append([]T{}, items...),
		update: update,
		idOf:   idOf,
		newID:  newID,
	}
}

// Items returns a copy of the committed collection
func (l *list[T]) Items() []T {
	return append([]T{}, l.items...)
}

// Len returns the number of committed entities
func (l *list[T]) Len() int {
	return len(l.items)
}

// EditingID returns the id being edited, or "" in create mode
func (l *list[T]) EditingID() string {
	return l.editingID
}

// Sync replaces the committed collection without publishing it.
// The orchestrator calls it after loading or resetting the document.
func (l *list[T]) Sync(items []T) {
	l.items = append([]T{}, items...)
	if l.editingID != "" {
		if _, ok := l.find(l.editingID); !ok {
			l.editingID = ""
		}
	}
}

func (l *list[T]) find(id string) (T, bool) {
	for _, item := range l.items {
		if l.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (l *list[T]) commit(next []T) {
	l.items = next
	if l.update != nil {
		l.update(append([]T{}, next...))
	}
}

// replace swaps the entity with id in place
func (l *list[T]) replace(id string, item T) bool {
	next := make([]T, len(l.items))
	found := false
	for i, existing := range l.items {
		if l.idOf(existing) == id {
			next[i] = item
			found = true
			continue
		}
		next[i] = existing
	}
	if !found {
		return false
	}
	l.commit(next)
	return true
}

func (l *list[T]) appendItems(items ...T) {
	next := make([]T, 0, len(l.items)+len(items))
	next = append(next, l.items...)
	next = append(next, items...)
	l.commit(next)
}

// Remove deletes the entity with id; an unknown id is a no-op. Removing the
// entity being edited returns the editor to create mode with the draft kept.
func (l *list[T]) Remove(id string) bool {
	if _, ok := l.find(id); !ok {
		return false
	}
	if id == l.editingID {
		l.editingID = ""
	}
	next := make([]T, 0, len(l.items)-1)
	for _, item := range l.items {
		if l.idOf(item) != id {
			next = append(next, item)
		}
	}
	l.commit(next)
	return true
}

func (l *list[T]) clearAll(confirmer Confirmer, prompt string) bool {
	if confirmer == nil || !confirmer.Confirm(prompt) {
		return false
	}
	l.commit([]T{})
	return true
}

// staging is a buffer of validated entities awaiting a batch commit
type staging[T any] struct {
	buf []T
}

// Staged returns a copy of the staging buffer
func (s *staging[T]) Staged() []T {
	return append([]T{}, s.buf...)
}

// Unstage removes the staged item at index
func (s *staging[T]) Unstage(index int) error {
	if index < 0 || index >= len(s.buf) {
		return &IndexError{Index: index, Len: len(s.buf)}
	}
	next := make([]T, 0, len(s.buf)-1)
	next = append(next, s.buf[:index]...)
	next = append(next, s.buf[index+1:]...)
	s.buf = next
	return nil
}

// DiscardStaged empties the buffer without committing
func (s *staging[T]) DiscardStaged() {
	s.buf = nil
}

func (s *staging[T]) push(item T) {
	s.buf = append(s.buf, item)
}

func (s *staging[T]) drain() []T {
	out := s.buf
	s.buf = nil
	return out
}
