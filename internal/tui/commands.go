package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/task"
)

// Commands run on background goroutines; each performs its API call and
// reports back with a single message. Failures are carried in the message
// and surfaced at the call site, leaving view state unchanged.

func (m *Model) loadCompaniesCmd() tea.Cmd {
	includeAll := m.includeAll
	return func() tea.Msg {
		companies, err := m.deps.API.ListCompanies(context.Background(), includeAll)
		if err != nil {
			return companiesLoadedMsg{err: err}
		}
		if m.deps.Cache != nil {
			// Cache refresh is best effort; the live response still renders.
			_ = m.deps.Cache.ReplaceCompanies(context.Background(), companies)
		}
		return companiesLoadedMsg{companies: companies}
	}
}

func (m *Model) loadMessagesCmd() tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.deps.API.ListMessages(context.Background())
		if err != nil {
			return messagesLoadedMsg{err: err}
		}
		if m.deps.Cache != nil {
			_ = m.deps.Cache.ReplaceMessages(context.Background(), msgs)
		}
		return messagesLoadedMsg{messages: msgs}
	}
}

// loadCacheCmd renders the last snapshot immediately while the API refresh
// is in flight.
func (m *Model) loadCacheCmd() tea.Cmd {
	return func() tea.Msg {
		companies, err := m.deps.Cache.Companies(context.Background())
		if err != nil || len(companies) == 0 {
			return nil
		}
		return companiesLoadedMsg{companies: companies, fromCache: true}
	}
}

func (m *Model) researchCmd(key task.Key, opts api.ResearchOptions) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.deps.API.ResearchCompany(context.Background(), key.OwnerID, opts)
		if err != nil {
			return taskStartedMsg{key: key, err: err}
		}
		return taskStartedMsg{key: key, taskID: ref.TaskID}
	}
}

func (m *Model) generateReplyCmd(key task.Key) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.deps.API.GenerateReply(context.Background(), key.OwnerID)
		if err != nil {
			return taskStartedMsg{key: key, err: err}
		}
		return taskStartedMsg{key: key, taskID: ref.TaskID}
	}
}

func (m *Model) sendAndArchiveCmd(key task.Key) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.deps.API.SendAndArchive(context.Background(), key.OwnerID)
		if err != nil {
			return taskStartedMsg{key: key, err: err}
		}
		return taskStartedMsg{key: key, taskID: ref.TaskID}
	}
}

func (m *Model) submitCompanyCmd(req api.NewCompanyRequest, key task.Key) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.deps.API.CreateCompany(context.Background(), req)
		if err != nil {
			return taskStartedMsg{key: key, err: err}
		}
		return taskStartedMsg{key: key, taskID: ref.TaskID}
	}
}

func (m *Model) importCmd(key task.Key) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.deps.API.ImportCompanies(context.Background())
		if err != nil {
			return taskStartedMsg{key: key, err: err}
		}
		return taskStartedMsg{key: key, taskID: ref.TaskID}
	}
}

func (m *Model) scanCmd(req api.ScanRequest, key task.Key) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.deps.API.ScanRecruiterEmails(context.Background(), req)
		if err != nil {
			return taskStartedMsg{key: key, err: err}
		}
		return taskStartedMsg{key: key, taskID: ref.TaskID}
	}
}

// pollCmd drives the poller until the task is terminal. The tracker entry
// was added before the action request; the poller removes it on exit.
func (m *Model) pollCmd(key task.Key, taskID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		t, err := m.deps.Poller.Poll(context.Background(), key, taskID)
		return taskFinishedMsg{key: key, task: t, err: err}
	}
}

func (m *Model) saveReplyCmd(messageID int64, text string) tea.Cmd {
	return func() tea.Msg {
		msg, err := m.deps.API.SaveReply(context.Background(), messageID, text)
		return replySavedMsg{message: msg, err: err}
	}
}

func (m *Model) archiveMessageCmd(messageID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.API.ArchiveMessage(context.Background(), messageID)
		return messageArchivedMsg{messageID: messageID, err: err}
	}
}

func (m *Model) updateCompanyCmd(id int64, details api.CompanyDetails) tea.Cmd {
	return func() tea.Msg {
		company, err := m.deps.API.UpdateCompanyDetails(context.Background(), id, details)
		return companyUpdatedMsg{company: company, err: err}
	}
}

func (m *Model) mergeCmd(canonicalID, duplicateID int64) tea.Cmd {
	return func() tea.Msg {
		company, err := m.deps.API.MergeCompanies(context.Background(), canonicalID, duplicateID)
		return companyMergedMsg{company: company, duplicateID: duplicateID, err: err}
	}
}

func (m *Model) loadDuplicatesCmd(companyID int64) tea.Cmd {
	return func() tea.Msg {
		duplicates, err := m.deps.API.PotentialDuplicates(context.Background(), companyID)
		return duplicatesLoadedMsg{companyID: companyID, duplicates: duplicates, err: err}
	}
}
