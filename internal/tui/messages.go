package tui

import (
	"github.com/google/uuid"

	"github.com/slinkp/outreach/internal/bus"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/task"
)

// Async message types for Bubble Tea commands.

type companiesLoadedMsg struct {
	companies []model.Company
	fromCache bool
	err       error
}

type messagesLoadedMsg struct {
	messages  []model.Message
	fromCache bool
	err       error
}

// taskStartedMsg reports the outcome of the initial action call that
// creates a background task.
type taskStartedMsg struct {
	key    task.Key
	taskID uuid.UUID
	err    error
}

// taskFinishedMsg reports a polled task reaching terminal status, or the
// poll loop ending on a fetch failure.
type taskFinishedMsg struct {
	key  task.Key
	task *model.Task
	err  error
}

type replySavedMsg struct {
	message *model.Message
	err     error
}

type messageArchivedMsg struct {
	messageID int64
	err       error
}

type companyUpdatedMsg struct {
	company *model.Company
	err     error
}

type companyMergedMsg struct {
	company     *model.Company
	duplicateID int64
	err         error
}

type duplicatesLoadedMsg struct {
	companyID  int64
	duplicates []model.Duplicate
	err        error
}

// importConfirmedMsg and sendConfirmedMsg fire after the user confirms the
// corresponding dialog; the in-flight tracking entry is added before the
// network request goes out.
type importConfirmedMsg struct{}

type sendConfirmedMsg struct {
	messageID int64
}

// BusMsg wraps a cross-view event published on the bus so the program
// loop can deliver it to Update.
type BusMsg struct {
	Event bus.Event
}
