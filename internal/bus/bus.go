// Package bus is a small typed event bus used for cross-view messaging:
// views publish concrete event values instead of stringly-named DOM-style
// events, and subscribers switch on the event type.
package bus

import "sync"

// Event is a published value. Subscribers type-switch on the concrete
// event structs below.
type Event any

// NavigateToCompany asks the company-list view to scroll to and expand a
// company.
type NavigateToCompany struct {
	CompanyID int64
}

// NavigateToMessage asks the daily dashboard to open a message.
type NavigateToMessage struct {
	MessageID int64
}

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine.
type Handler func(Event)

// Bus fans events out to subscribers. Safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns an unsubscribe func.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers e to every current subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
