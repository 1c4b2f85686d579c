package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/slinkp/outreach/internal/model"
)

// TaskRef is the server's acknowledgement of a newly started background job.
type TaskRef struct {
	TaskID uuid.UUID `json:"task_id"`
}

// GetTask fetches the current status of a background task.
func (c *Client) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	path := fmt.Sprintf("/api/tasks/%s", id)
	if err := c.do(ctx, http.MethodGet, path, "poll task", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ScanRequest configures a recruiter email scan.
type ScanRequest struct {
	MaxMessages int  `json:"max_messages" validate:"gte=1,lte=500"`
	DoResearch  bool `json:"do_research"`
}

// ScanRecruiterEmails starts a background scan of the recruiter mailbox.
func (c *Client) ScanRecruiterEmails(ctx context.Context, req ScanRequest) (*TaskRef, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, &ErrValidation{Message: "max messages must be between 1 and 500"}
	}
	var ref TaskRef
	if err := c.do(ctx, http.MethodPost, "/api/scan_recruiter_emails", "scan emails", req, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ImportCompanies starts a background import of companies from the
// configured spreadsheet.
func (c *Client) ImportCompanies(ctx context.Context) (*TaskRef, error) {
	var ref TaskRef
	if err := c.do(ctx, http.MethodPost, "/api/import_companies", "import companies", nil, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}
