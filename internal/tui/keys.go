package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/bus"
	"github.com/slinkp/outreach/internal/filter"
	"github.com/slinkp/outreach/internal/task"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		if m.view == viewCompanies {
			m.view = viewDaily
		} else {
			m.view = viewCompanies
		}
		return m, nil

	case "u":
		if m.shareString == "" {
			m.shareString = m.shareState()
		} else {
			m.shareString = ""
		}
		return m, nil

	case "i":
		if m.importingCompanies {
			return m, nil
		}
		m.confirm = confirmState{prompt: "Import companies from spreadsheet?"}
		m.confirm.cmd = func() tea.Msg { return importConfirmedMsg{} }
		m.modal = modalConfirm
		return m, nil

	case "c":
		m.scanMax.SetValue("")
		m.scanDoResearch = false
		m.scanError = ""
		m.modal = modalScan
		return m, nil

	case "n":
		m.researchURL.SetValue("")
		m.researchName.SetValue("")
		m.researchFocus = 0
		m.researchErr = ""
		m.researchURL.Focus()
		m.researchName.Blur()
		m.modal = modalResearch
		return m, nil

	case "R":
		return m, tea.Batch(m.loadCompaniesCmd(), m.loadMessagesCmd())

	case "esc":
		m.errMsg = ""
		m.status = ""
		m.shareString = ""
		return m, nil
	}

	if m.view == viewCompanies {
		return m.handleCompaniesKey(msg)
	}
	return m.handleDailyKey(msg)
}

func (m *Model) handleCompaniesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	companies := m.visibleCompanies()

	switch msg.String() {
	case "up", "k":
		if m.companyCursor > 0 {
			m.companyCursor--
		}
	case "down", "j":
		if m.companyCursor < len(companies)-1 {
			m.companyCursor++
		}

	case "enter":
		if id := m.selectedCompanyID(); id != 0 {
			m.expandedCompanies[id] = !m.expandedCompanies[id]
		}

	case "r":
		id := m.selectedCompanyID()
		if id == 0 {
			return m, nil
		}
		return m.startResearch(id, api.ResearchOptions{})

	case "F":
		// Force a full re-research, overriding cached levels and contacts.
		id := m.selectedCompanyID()
		if id == 0 {
			return m, nil
		}
		return m.startResearch(id, api.ResearchOptions{ForceLevels: true, ForceContacts: true})

	case "p":
		id := m.selectedCompanyID()
		c := m.companyByID(id)
		if c == nil {
			return m, nil
		}
		// Cycle the promising tri-state: unset -> yes -> no -> unset.
		var next *bool
		switch {
		case c.Promising == nil:
			v := true
			next = &v
		case *c.Promising:
			v := false
			next = &v
		default:
			next = nil
		}
		return m, m.updateCompanyCmd(id, api.CompanyDetails{Promising: next})

	case "d":
		id := m.selectedCompanyID()
		if id == 0 {
			return m, nil
		}
		m.mergeCompanyID = id
		m.mergeCandidates = nil
		m.mergeLoading = true
		m.modal = modalMerge
		return m, m.loadDuplicatesCmd(id)

	case "f":
		m.companyFilterMode = nextCompanyFilter(m.companyFilterMode)
		m.companyCursor = 0

	case "a":
		m.includeAll = !m.includeAll
		return m, m.loadCompaniesCmd()
	}

	return m, nil
}

func (m *Model) handleDailyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	msgs := m.visibleMessages()

	switch msg.String() {
	case "up", "k":
		if m.dailyCursor > 0 {
			m.dailyCursor--
		}
	case "down", "j":
		if m.dailyCursor < len(msgs)-1 {
			m.dailyCursor++
		}

	case "enter":
		if sel := m.selectedMessage(); sel != nil {
			m.expandedMessages[sel.ID] = !m.expandedMessages[sel.ID]
		}

	case "v":
		if sel := m.selectedMessage(); sel != nil {
			m.expandedReplies[sel.ID] = !m.expandedReplies[sel.ID]
		}

	case "f":
		m.filterMode = nextMessageFilter(m.filterMode)
		m.dailyCursor = 0

	case "s":
		m.sortNewestFirst = !m.sortNewestFirst
		m.dailyCursor = 0

	case "g":
		sel := m.selectedMessage()
		if sel == nil {
			return m, nil
		}
		key := task.Key{OwnerID: sel.ID, Kind: task.KindGenerateReply}
		if !m.deps.Poller.Tracker().Start(key, noTaskID) {
			return m, nil
		}
		return m, m.generateReplyCmd(key)

	case "e":
		sel := m.selectedMessage()
		if sel == nil {
			return m, nil
		}
		m.replyMessageID = sel.ID
		m.replyInput.SetValue(sel.ReplyMessage)
		m.replyInput.Focus()
		m.modal = modalEditReply
		return m, nil

	case "r":
		sel := m.selectedMessage()
		if sel == nil {
			return m, nil
		}
		return m.startResearch(sel.CompanyID, api.ResearchOptions{})

	case "A":
		sel := m.selectedMessage()
		if sel == nil {
			return m, nil
		}
		id := sel.ID
		m.confirm = confirmState{
			prompt: fmt.Sprintf("Archive message from %s?", sel.Sender),
			cmd:    m.archiveMessageCmd(id),
		}
		m.modal = modalConfirm
		return m, nil

	case "S":
		sel := m.selectedMessage()
		if sel == nil || sel.ReplyMessage == "" {
			m.errMsg = "No reply to send"
			return m, nil
		}
		id := sel.ID
		m.confirm = confirmState{
			prompt: fmt.Sprintf("Send reply to %s and archive?", sel.Sender),
			cmd:    func() tea.Msg { return sendConfirmedMsg{messageID: id} },
		}
		m.modal = modalConfirm
		return m, nil

	case "o":
		if sel := m.selectedMessage(); sel != nil {
			m.deps.Bus.Publish(bus.NavigateToCompany{CompanyID: sel.CompanyID})
		}
	}

	return m, nil
}

func nextMessageFilter(mode string) string {
	switch mode {
	case filter.ModeAll:
		return filter.ModeNotReplied
	case filter.ModeNotReplied:
		return filter.ModeReplied
	case filter.ModeReplied:
		return filter.ModeArchived
	default:
		return filter.ModeAll
	}
}

func nextCompanyFilter(mode string) string {
	switch mode {
	case filter.CompanyModeAll:
		return filter.CompanyModePromising
	case filter.CompanyModePromising:
		return filter.CompanyModeUnreviewed
	case filter.CompanyModeUnreviewed:
		return filter.CompanyModeArchived
	default:
		return filter.CompanyModeAll
	}
}
