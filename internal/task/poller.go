package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/slinkp/outreach/internal/model"
)

// DefaultInterval is the delay between status polls.
const DefaultInterval = time.Second

// Getter fetches task status. Satisfied by *api.Client.
type Getter interface {
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
}

// Poller drives a tracked background job to completion by requesting its
// status on a fixed interval until the server reports completed or failed.
// There is no backoff and no attempt cap; a single fetch failure ends the
// loop and counts as a failure.
type Poller struct {
	api      Getter
	tracker  *Tracker
	interval time.Duration
}

// NewPoller creates a poller over the given API and tracker. A
// non-positive interval falls back to DefaultInterval.
func NewPoller(api Getter, tracker *Tracker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{api: api, tracker: tracker, interval: interval}
}

// Tracker returns the tracker this poller consults.
func (p *Poller) Tracker() *Tracker {
	return p.tracker
}

// Start registers the job and begins polling. Returns an error when a job
// of the same kind is already in flight for the owner.
func (p *Poller) Start(ctx context.Context, key Key, taskID uuid.UUID) (*model.Task, error) {
	if !p.tracker.Start(key, taskID) {
		return nil, fmt.Errorf("%s already in progress", key.Kind.Verb())
	}
	return p.Poll(ctx, key, taskID)
}

// Poll requests the task's status every interval until it is terminal, the
// key is removed from the tracker, or ctx is done. The tracker entry is
// always removed before returning. A nil task with a nil error means the
// loop was cancelled by key removal.
func (p *Poller) Poll(ctx context.Context, key Key, taskID uuid.UUID) (*model.Task, error) {
	defer p.tracker.Stop(key)

	for {
		if !p.tracker.Active(key) {
			return nil, nil
		}

		t, err := p.api.GetTask(ctx, taskID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.Kind.Verb(), err)
		}
		if t.Terminal() {
			return t, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
