package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/config"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/task"
)

// newClient builds the API client and poller from the environment
// configuration.
func newClient() (*api.Client, *task.Poller, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	client := api.New(cfg.APIBaseURL, &api.Options{Timeout: cfg.RequestTimeout})
	poller := task.NewPoller(client, task.NewTracker(), cfg.PollInterval)
	return client, poller, cfg, nil
}

// waitForTask registers the job and polls it until terminal, returning an
// error when it failed.
func waitForTask(ctx context.Context, poller *task.Poller, key task.Key, taskID uuid.UUID) (*model.Task, error) {
	t, err := poller.Start(ctx, key, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%s was cancelled", key.Kind.Verb())
	}
	if t.Status == model.TaskStatusFailed {
		return t, fmt.Errorf("%s failed: %s", key.Kind.Verb(), t.Error)
	}
	return t, nil
}
