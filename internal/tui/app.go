// Package tui implements the terminal dashboard: a company-list view and a
// daily message dashboard over the outreach API, with background research,
// reply generation, email scanning and spreadsheet import tracked through
// the task poller.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/bus"
	"github.com/slinkp/outreach/internal/filter"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/store"
	"github.com/slinkp/outreach/internal/task"
	"github.com/slinkp/outreach/internal/urlstate"
)

// noTaskID marks a tracker entry whose task id is not yet known: the entry
// is created before the action request goes out.
var noTaskID = uuid.Nil

type viewState int

const (
	viewCompanies viewState = iota
	viewDaily
)

type modalState int

const (
	modalNone modalState = iota
	modalResearch // submit a new company for research
	modalScan     // scan recruiter emails
	modalMerge    // pick a duplicate to merge
	modalEditReply
	modalConfirm
)

// Deps are the collaborators injected into the dashboard. Cache may be
// nil, in which case the dashboard always starts empty and loads from the
// API.
type Deps struct {
	API    *api.Client
	Poller *task.Poller
	Cache  *store.Store
	Bus    *bus.Bus
}

// confirmState holds a pending destructive action awaiting confirmation.
type confirmState struct {
	prompt string
	cmd    tea.Cmd
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	deps Deps

	view  viewState
	modal modalState

	companies []model.Company
	messages  []model.Message
	loading   bool
	fromCache bool

	// List state, mirrored into the shareable state string.
	companyCursor     int
	dailyCursor       int
	filterMode        string
	companyFilterMode string
	sortNewestFirst   bool
	includeAll        bool
	anchor            int64

	expandedCompanies map[int64]bool
	expandedMessages  map[int64]bool
	expandedReplies   map[int64]bool

	// Import state.
	importingCompanies bool
	importTaskID       uuid.UUID
	importError        string
	importSummary      *model.ImportSummary

	// Scan state.
	scanning   bool
	scanError  string
	scanResult *model.ScanResult

	// Research-submission modal.
	researchURL   textinput.Model
	researchName  textinput.Model
	researchFocus int
	researchErr   string

	// Scan modal.
	scanMax        textinput.Model
	scanDoResearch bool

	// Reply editor.
	replyInput     textarea.Model
	replyMessageID int64

	// Merge modal.
	mergeCompanyID  int64
	mergeCandidates []model.Duplicate
	mergeCursor     int
	mergeLoading    bool

	confirm confirmState

	spinner     spinner.Model
	status      string
	errMsg      string
	shareString string

	width  int
	height int
}

// New builds the dashboard model, restoring view/filter/sort state from the
// given shareable state.
func New(deps Deps, initial urlstate.State) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	researchURL := textinput.New()
	researchURL.Placeholder = "https://company.example.com"
	researchURL.Focus()
	researchName := textinput.New()
	researchName.Placeholder = "Company name"

	scanMax := textinput.New()
	scanMax.Placeholder = "50"
	scanMax.CharLimit = 4
	scanMax.Focus()

	reply := textarea.New()
	reply.Placeholder = "Reply text"

	m := &Model{
		deps:              deps,
		filterMode:        initial.FilterMode,
		companyFilterMode: filter.CompanyModeAll,
		sortNewestFirst:   initial.SortNewestFirst,
		includeAll:        initial.IncludeAll,
		anchor:            initial.Anchor,
		expandedCompanies: make(map[int64]bool),
		expandedMessages:  make(map[int64]bool),
		expandedReplies:   make(map[int64]bool),
		researchURL:       researchURL,
		researchName:      researchName,
		scanMax:           scanMax,
		replyInput:        reply,
		spinner:           sp,
		loading:           true,
	}
	if initial.View == urlstate.ViewDaily {
		m.view = viewDaily
	}
	if initial.Message != 0 {
		m.expandedMessages[initial.Message] = true
	}
	return m
}

// Init loads the cached snapshot (when present) and refreshes from the API.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadCompaniesCmd(), m.loadMessagesCmd()}
	if m.deps.Cache != nil {
		cmds = append(cmds, m.loadCacheCmd())
	}
	return tea.Batch(cmds...)
}

// State returns the current shareable view state.
func (m *Model) State() urlstate.State {
	s := urlstate.State{
		FilterMode:      m.filterMode,
		SortNewestFirst: m.sortNewestFirst,
		IncludeAll:      m.includeAll,
	}
	if m.view == viewDaily {
		s.View = urlstate.ViewDaily
	}
	if m.view == viewCompanies && len(m.visibleCompanies()) > 0 {
		s.Anchor = m.selectedCompanyID()
	}
	return s
}

// visibleCompanies applies the company filter and sort.
func (m *Model) visibleCompanies() []model.Company {
	return filter.SortCompanies(filter.Companies(m.companies, m.companyFilterMode))
}

// visibleMessages applies the message filter mode and date sort.
func (m *Model) visibleMessages() []model.Message {
	return filter.SortMessages(filter.Messages(m.messages, m.filterMode), m.sortNewestFirst)
}

func (m *Model) selectedCompanyID() int64 {
	companies := m.visibleCompanies()
	if len(companies) == 0 {
		return 0
	}
	if m.companyCursor >= len(companies) {
		return companies[len(companies)-1].ID
	}
	return companies[m.companyCursor].ID
}

func (m *Model) selectedMessage() *model.Message {
	msgs := m.visibleMessages()
	if len(msgs) == 0 {
		return nil
	}
	i := m.dailyCursor
	if i >= len(msgs) {
		i = len(msgs) - 1
	}
	return &msgs[i]
}

// companyByID finds a company in the loaded list.
func (m *Model) companyByID(id int64) *model.Company {
	for i := range m.companies {
		if m.companies[i].ID == id {
			return &m.companies[i]
		}
	}
	return nil
}

// messageByID finds a message in the loaded list.
func (m *Model) messageByID(id int64) *model.Message {
	for i := range m.messages {
		if m.messages[i].ID == id {
			return &m.messages[i]
		}
	}
	return nil
}
