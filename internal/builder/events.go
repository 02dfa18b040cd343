package builder

import (
	"slices"
	"sync"
)

// EventType identifies an orchestrator notification
type EventType string

// Events published to subscribers
const (
	EventLoaded     EventType = "loaded"
	EventChanged    EventType = "changed"
	EventSaved      EventType = "saved"
	EventSaveFailed EventType = "save_failed"
	EventReset      EventType = "reset"
)

// Event is delivered to subscribers after the document or its persisted copy changes
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
}

// bus is a publish/subscribe channel scoped to one Builder
type bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func newBus() *bus {
	return &bus{subs: make(map[int]func(Event))}
}

func (b *bus) subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

func (b *bus) publish(e Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
