package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/bus"
	"github.com/slinkp/outreach/internal/format"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/task"
	"github.com/slinkp/outreach/internal/urlstate"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.replyInput.SetWidth(msg.Width - 8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case companiesLoadedMsg:
		return m.handleCompaniesLoaded(msg)

	case messagesLoadedMsg:
		return m.handleMessagesLoaded(msg)

	case taskStartedMsg:
		return m.handleTaskStarted(msg)

	case taskFinishedMsg:
		return m.handleTaskFinished(msg)

	case replySavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		if saved := m.messageByID(msg.message.ID); saved != nil {
			*saved = *msg.message
		}
		m.status = "Reply saved"
		return m, nil

	case messageArchivedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Message archived"
		return m, m.loadMessagesCmd()

	case companyUpdatedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		if c := m.companyByID(msg.company.ID); c != nil {
			*c = *msg.company
		}
		return m, nil

	case companyMergedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Merged into %s", msg.company.Name)
		return m, tea.Batch(m.loadCompaniesCmd(), m.loadMessagesCmd())

	case duplicatesLoadedMsg:
		m.mergeLoading = false
		if msg.err != nil {
			m.modal = modalNone
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.mergeCandidates = msg.duplicates
		m.mergeCursor = 0
		return m, nil

	case importConfirmedMsg:
		return m.startImport()

	case sendConfirmedMsg:
		key := task.Key{OwnerID: msg.messageID, Kind: task.KindSendReply}
		if !m.deps.Poller.Tracker().Start(key, noTaskID) {
			return m, nil
		}
		return m, m.sendAndArchiveCmd(key)

	case BusMsg:
		return m.handleBusEvent(msg.Event)
	}

	return m, nil
}

func (m *Model) handleCompaniesLoaded(msg companiesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.errMsg = msg.err.Error()
		return m, nil
	}
	// A stale cache snapshot must not clobber live data that already
	// arrived.
	if msg.fromCache && !m.fromCache && !m.loading {
		return m, nil
	}
	m.companies = msg.companies
	m.fromCache = msg.fromCache
	if !msg.fromCache {
		m.loading = false
	}
	m.applyAnchor()
	return m, nil
}

func (m *Model) handleMessagesLoaded(msg messagesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}
	m.messages = msg.messages
	return m, nil
}

// applyAnchor scrolls the company list to a pending anchor target.
func (m *Model) applyAnchor() {
	if m.anchor == 0 {
		return
	}
	for i, c := range m.visibleCompanies() {
		if c.ID == m.anchor {
			m.companyCursor = i
			m.expandedCompanies[c.ID] = true
			m.anchor = 0
			return
		}
	}
}

func (m *Model) handleTaskStarted(msg taskStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The action call itself failed: release the in-flight slot and
		// surface the error, leaving entity state unchanged.
		m.deps.Poller.Tracker().Stop(msg.key)
		switch msg.key.Kind {
		case task.KindImport:
			m.importingCompanies = false
			m.importError = msg.err.Error()
		case task.KindScan:
			m.scanning = false
			m.scanError = msg.err.Error()
		default:
			m.errMsg = msg.err.Error()
		}
		return m, nil
	}

	switch msg.key.Kind {
	case task.KindImport:
		m.importTaskID = msg.taskID
	case task.KindScan:
		m.scanResult = nil
	}
	return m, m.pollCmd(msg.key, msg.taskID)
}

func (m *Model) handleTaskFinished(msg taskFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch msg.key.Kind {
		case task.KindImport:
			m.importingCompanies = false
			m.importError = msg.err.Error()
		case task.KindScan:
			m.scanning = false
			m.scanError = msg.err.Error()
		default:
			m.errMsg = msg.err.Error()
		}
		return m, nil
	}
	if msg.task == nil {
		// Poll loop was cancelled by key removal.
		return m, nil
	}

	switch msg.key.Kind {
	case task.KindResearch:
		if c := m.companyByID(msg.key.OwnerID); c != nil {
			task.ApplyToCompany(task.KindResearch, c, msg.task)
		}
		if msg.task.Status == model.TaskStatusFailed {
			m.errMsg = "Research failed: " + format.ResearchErrors(msg.task.Error)
			return m, nil
		}
		m.status = "Research completed"
		// A zero owner means this was a new-company submission; the fresh
		// record only exists server-side.
		return m, tea.Batch(m.loadCompaniesCmd(), m.loadMessagesCmd())

	case task.KindGenerateReply:
		if msgRec := m.messageByID(msg.key.OwnerID); msgRec != nil {
			task.ApplyToMessage(task.KindGenerateReply, msgRec, msg.task)
		}
		if msg.task.Status == model.TaskStatusFailed {
			m.errMsg = "Reply generation failed: " + msg.task.Error
			return m, nil
		}
		m.expandedReplies[msg.key.OwnerID] = true
		m.status = "Reply generated"
		return m, nil

	case task.KindSendReply:
		if msgRec := m.messageByID(msg.key.OwnerID); msgRec != nil {
			task.ApplyToMessage(task.KindSendReply, msgRec, msg.task)
		}
		if msg.task.Status == model.TaskStatusFailed {
			m.errMsg = "Send failed: " + msg.task.Error
			return m, nil
		}
		m.status = "Reply sent and message archived"
		return m, m.loadMessagesCmd()

	case task.KindScan:
		m.scanning = false
		if msg.task.Status == model.TaskStatusFailed {
			m.scanError = msg.task.Error
			return m, nil
		}
		m.scanResult = model.ScanResultFrom(msg.task.Result)
		m.status = "Email scan completed"
		return m, tea.Batch(m.loadCompaniesCmd(), m.loadMessagesCmd())

	case task.KindImport:
		m.importingCompanies = false
		if msg.task.Status == model.TaskStatusFailed {
			m.importError = msg.task.Error
			return m, nil
		}
		m.importSummary = model.ImportSummaryFrom(msg.task.Result)
		m.status = "Import completed"
		return m, m.loadCompaniesCmd()
	}

	return m, nil
}

func (m *Model) handleBusEvent(e bus.Event) (tea.Model, tea.Cmd) {
	switch e := e.(type) {
	case bus.NavigateToCompany:
		m.view = viewCompanies
		m.anchor = e.CompanyID
		m.applyAnchor()
	case bus.NavigateToMessage:
		m.view = viewDaily
		m.expandedMessages[e.MessageID] = true
		for i, msg := range m.visibleMessages() {
			if msg.ID == e.MessageID {
				m.dailyCursor = i
				break
			}
		}
	}
	return m, nil
}

// shareState renders the current view state as a query string.
func (m *Model) shareState() string {
	return urlstate.Encode(m.State())
}

// startImport begins a spreadsheet import: the in-flight flag is set before
// the request goes out, and cleared by the started/finished handlers.
func (m *Model) startImport() (tea.Model, tea.Cmd) {
	key := task.Key{Kind: task.KindImport}
	if !m.deps.Poller.Tracker().Start(key, noTaskID) {
		return m, nil
	}
	m.importingCompanies = true
	m.importError = ""
	m.importSummary = nil
	return m, m.importCmd(key)
}

// startResearch begins company research with the given override flags.
func (m *Model) startResearch(companyID int64, opts api.ResearchOptions) (tea.Model, tea.Cmd) {
	key := task.Key{OwnerID: companyID, Kind: task.KindResearch}
	if !m.deps.Poller.Tracker().Start(key, noTaskID) {
		return m, nil
	}
	if c := m.companyByID(companyID); c != nil {
		c.ResearchStatus = model.ResearchStatusPending
	}
	return m, m.researchCmd(key, opts)
}
