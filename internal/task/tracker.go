package task

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker records which (owner, kind) pairs have a job in flight. Views use
// it to disable controls and show spinners; the poller uses membership as
// its loop continuation condition. Removing a key is the only cancellation
// mechanism.
type Tracker struct {
	mu     sync.Mutex
	active map[Key]uuid.UUID
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[Key]uuid.UUID)}
}

// Start records a job for key. Returns false when a job is already in
// flight for the key, in which case the caller must not start another.
func (t *Tracker) Start(key Key, taskID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.active[key]; exists {
		return false
	}
	t.active[key] = taskID
	return true
}

// Stop removes the job for key. The next poll iteration for the key will
// observe the removal and end its loop.
func (t *Tracker) Stop(key Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, key)
}

// Active reports whether a job is in flight for key.
func (t *Tracker) Active(key Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, exists := t.active[key]
	return exists
}

// TaskID returns the task id recorded for key.
func (t *Tracker) TaskID(key Key) (uuid.UUID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, exists := t.active[key]
	return id, exists
}

// Owners returns the owner ids with a job of the given kind in flight.
func (t *Tracker) Owners(kind Kind) []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var owners []int64
	for key := range t.active {
		if key.Kind == kind {
			owners = append(owners, key.OwnerID)
		}
	}
	return owners
}
