// Package task tracks in-flight background jobs and polls them to
// completion. Each job is keyed by its owning entity and a task kind;
// presence in the tracker is the polling loop's continuation condition, so
// at most one loop runs per (owner, kind) pair.
package task

import (
	"time"

	"github.com/slinkp/outreach/internal/model"
)

// Kind identifies the type of background job being polled. Each kind maps
// to a fixed strategy for writing the task outcome back onto its owner.
type Kind int

const (
	KindResearch Kind = iota
	KindGenerateReply
	KindSendReply
	KindScan
	KindImport
)

// Verb returns the human-readable action name, used in progress and error
// messages.
func (k Kind) Verb() string {
	switch k {
	case KindResearch:
		return "research"
	case KindGenerateReply:
		return "generate reply"
	case KindSendReply:
		return "send reply"
	case KindScan:
		return "scan emails"
	case KindImport:
		return "import companies"
	default:
		return "unknown task"
	}
}

// Key identifies one in-flight job. OwnerID is zero for jobs without an
// owning entity (scan, import).
type Key struct {
	OwnerID int64
	Kind    Kind
}

// companyAppliers write a terminal task's outcome onto a company record.
var companyAppliers = map[Kind]func(*model.Company, *model.Task){
	KindResearch: func(c *model.Company, t *model.Task) {
		c.ResearchStatus = t.Status
		if t.Status == model.TaskStatusFailed {
			c.ResearchErrors = t.Error
		} else {
			c.ResearchErrors = nil
		}
	},
}

// messageAppliers write a terminal task's outcome onto a message record.
var messageAppliers = map[Kind]func(*model.Message, *model.Task){
	KindResearch: func(m *model.Message, t *model.Task) {
		m.ResearchStatus = t.Status
		if t.Status == model.TaskStatusFailed {
			m.ResearchErrors = t.Error
		} else {
			m.ResearchErrors = nil
		}
	},
	KindGenerateReply: func(m *model.Message, t *model.Task) {
		if t.Status != model.TaskStatusCompleted {
			return
		}
		if text, ok := t.Result["reply_message"].(string); ok {
			m.ReplyMessage = text
		}
		m.ReplyStatus = model.ReplyStatusGenerated
	},
	KindSendReply: func(m *model.Message, t *model.Task) {
		if t.Status != model.TaskStatusCompleted {
			return
		}
		m.ReplyStatus = model.ReplyStatusSent
		now := time.Now()
		if raw, ok := t.Result["reply_sent_at"].(string); ok {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				now = ts
			}
		}
		m.ReplySentAt = &now
		m.ArchivedAt = &now
	},
}

// ApplyToCompany writes a terminal task outcome onto a company. Reports
// whether the kind has a company strategy.
func ApplyToCompany(k Kind, c *model.Company, t *model.Task) bool {
	apply, ok := companyAppliers[k]
	if !ok {
		return false
	}
	apply(c, t)
	return true
}

// ApplyToMessage writes a terminal task outcome onto a message. Reports
// whether the kind has a message strategy.
func ApplyToMessage(k Kind, m *model.Message, t *model.Task) bool {
	apply, ok := messageAppliers[k]
	if !ok {
		return false
	}
	apply(m, t)
	return true
}
