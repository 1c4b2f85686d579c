// Package model defines the wire types shared between the outreach API
// client and the dashboard views.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ResearchStatus constants mirror the server's research lifecycle.
const (
	ResearchStatusNone      = ""
	ResearchStatusPending   = "pending"
	ResearchStatusRunning   = "running"
	ResearchStatusCompleted = "completed"
	ResearchStatusFailed    = "failed"
)

// ReplyStatus constants
const (
	ReplyStatusNone      = "none"
	ReplyStatusGenerated = "generated"
	ReplyStatusSent      = "sent"
)

// TaskStatus constants
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// Alias is an alternate name for a company, with provenance.
type Alias struct {
	Alias  string `json:"alias"`
	Source string `json:"source,omitempty"`
	Active bool   `json:"is_active"`
}

// Company represents a company being tracked for recruiter outreach.
type Company struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	URL            *string    `json:"url,omitempty"`
	Aliases        []Alias    `json:"aliases,omitempty"`
	ResearchStatus string     `json:"research_status,omitempty"`
	ResearchErrors any        `json:"research_errors,omitempty"`
	Promising      *bool      `json:"promising,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	// Loaded via the messages listing, not owned by the company record.
	Messages []Message `json:"messages,omitempty"`
}

// Archived reports whether the company has been archived.
func (c *Company) Archived() bool {
	return c.ArchivedAt != nil
}

// Message represents a recruiter message associated with a company.
type Message struct {
	ID        int64      `json:"id"`
	CompanyID int64      `json:"company_id"`
	Subject   string     `json:"subject"`
	Sender    string     `json:"sender"`
	Date      *time.Time `json:"date,omitempty"`
	Message   string     `json:"message,omitempty"`

	ReplyStatus  string     `json:"reply_status,omitempty"`
	ReplyMessage string     `json:"reply_message,omitempty"`
	ReplySentAt  *time.Time `json:"reply_sent_at,omitempty"`
	ArchivedAt   *time.Time `json:"archived_at,omitempty"`

	// Mirrors of the owning company's state, denormalized by the server so
	// the daily dashboard can render per-message rows without a join.
	CompanyName       string     `json:"company_name,omitempty"`
	CompanyArchivedAt *time.Time `json:"company_archived_at,omitempty"`
	ResearchStatus    string     `json:"research_status,omitempty"`
	ResearchErrors    any        `json:"research_errors,omitempty"`
}

// Replied reports whether a reply has been sent for this message.
func (m *Message) Replied() bool {
	return m.ReplySentAt != nil
}

// Archived reports whether the message or its company has been archived.
func (m *Message) Archived() bool {
	return m.ArchivedAt != nil || m.CompanyArchivedAt != nil
}

// Task is a server-side background job. The client only ever holds a
// transient task id per in-flight operation and polls it until terminal.
type Task struct {
	ID     uuid.UUID      `json:"id"`
	Status string         `json:"status"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Terminal reports whether the task has finished, successfully or not.
func (t *Task) Terminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}

// ImportSummary holds the per-item counters returned by a spreadsheet
// import task. Displayed verbatim.
type ImportSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ScanResult summarizes a recruiter email scan task.
type ScanResult struct {
	MessagesScanned int `json:"messages_scanned"`
	MessagesFound   int `json:"messages_found"`
	CompaniesFound  int `json:"companies_found"`
}

// Duplicate is a potential-duplicate candidate for a company.
type Duplicate struct {
	Company    Company `json:"company"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}
