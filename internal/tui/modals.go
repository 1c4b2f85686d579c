package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/task"
)

// defaultScanMax is used when the scan form is submitted empty.
const defaultScanMax = 50

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirm:
		return m.handleConfirmKey(msg)
	case modalResearch:
		return m.handleResearchModalKey(msg)
	case modalScan:
		return m.handleScanModalKey(msg)
	case modalMerge:
		return m.handleMergeModalKey(msg)
	case modalEditReply:
		return m.handleReplyModalKey(msg)
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		cmd := m.confirm.cmd
		m.confirm = confirmState{}
		m.modal = modalNone
		return m, cmd
	case "n", "N", "esc":
		m.confirm = confirmState{}
		m.modal = modalNone
	}
	return m, nil
}

func (m *Model) handleResearchModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.researchFocus = 1 - m.researchFocus
		if m.researchFocus == 0 {
			m.researchURL.Focus()
			m.researchName.Blur()
		} else {
			m.researchURL.Blur()
			m.researchName.Focus()
		}
		return m, nil

	case "enter":
		req := api.NewCompanyRequest{
			URL:  strings.TrimSpace(m.researchURL.Value()),
			Name: strings.TrimSpace(m.researchName.Value()),
		}
		// Validated before any network call.
		if req.URL == "" && req.Name == "" {
			m.researchErr = "Enter a URL or a company name"
			return m, nil
		}
		key := task.Key{Kind: task.KindResearch}
		if !m.deps.Poller.Tracker().Start(key, noTaskID) {
			m.researchErr = "A research submission is already in progress"
			return m, nil
		}
		m.researchErr = ""
		m.modal = modalNone
		m.status = "Submitting company for research..."
		return m, m.submitCompanyCmd(req, key)
	}

	var cmd tea.Cmd
	if m.researchFocus == 0 {
		m.researchURL, cmd = m.researchURL.Update(msg)
	} else {
		m.researchName, cmd = m.researchName.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleScanModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil

	case "ctrl+r":
		m.scanDoResearch = !m.scanDoResearch
		return m, nil

	case "enter":
		maxMessages := defaultScanMax
		if raw := strings.TrimSpace(m.scanMax.Value()); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				m.scanError = "Max messages must be a positive number"
				return m, nil
			}
			maxMessages = n
		}
		key := task.Key{Kind: task.KindScan}
		if !m.deps.Poller.Tracker().Start(key, noTaskID) {
			m.scanError = "A scan is already in progress"
			return m, nil
		}
		m.scanning = true
		m.scanError = ""
		m.modal = modalNone
		req := api.ScanRequest{MaxMessages: maxMessages, DoResearch: m.scanDoResearch}
		return m, m.scanCmd(req, key)
	}

	var cmd tea.Cmd
	m.scanMax, cmd = m.scanMax.Update(msg)
	return m, cmd
}

func (m *Model) handleMergeModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil

	case "up", "k":
		if m.mergeCursor > 0 {
			m.mergeCursor--
		}
	case "down", "j":
		if m.mergeCursor < len(m.mergeCandidates)-1 {
			m.mergeCursor++
		}

	case "enter":
		if m.mergeCursor >= len(m.mergeCandidates) {
			return m, nil
		}
		duplicate := m.mergeCandidates[m.mergeCursor].Company
		canonical := m.companyByID(m.mergeCompanyID)
		if canonical == nil {
			m.modal = modalNone
			return m, nil
		}
		m.confirm = confirmState{
			prompt: fmt.Sprintf("Merge %q into %q? This cannot be undone.", duplicate.Name, canonical.Name),
			cmd:    m.mergeCmd(m.mergeCompanyID, duplicate.ID),
		}
		m.modal = modalConfirm
	}
	return m, nil
}

func (m *Model) handleReplyModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.replyInput.Blur()
		return m, nil

	case "ctrl+s":
		text := m.replyInput.Value()
		m.modal = modalNone
		m.replyInput.Blur()
		return m, m.saveReplyCmd(m.replyMessageID, text)
	}

	var cmd tea.Cmd
	m.replyInput, cmd = m.replyInput.Update(msg)
	return m, cmd
}
