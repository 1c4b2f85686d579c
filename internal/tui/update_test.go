package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slinkp/outreach/internal/bus"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/task"
	"github.com/slinkp/outreach/internal/urlstate"
)

type stubGetter struct{}

func (stubGetter) GetTask(context.Context, uuid.UUID) (*model.Task, error) {
	return nil, errors.New("not used")
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	poller := task.NewPoller(stubGetter{}, task.NewTracker(), time.Millisecond)
	return New(Deps{Poller: poller, Bus: bus.New()}, urlstate.Default())
}

func TestImportLifecycle(t *testing.T) {
	key := task.Key{Kind: task.KindImport}

	t.Run("confirm marks import in flight before the request", func(t *testing.T) {
		m := newTestModel(t)

		_, cmd := m.Update(importConfirmedMsg{})
		assert.True(t, m.importingCompanies)
		assert.Empty(t, m.importError)
		assert.True(t, m.deps.Poller.Tracker().Active(key))
		require.NotNil(t, cmd)
	})

	t.Run("second confirm while in flight is a no-op", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(importConfirmedMsg{})

		_, cmd := m.Update(importConfirmedMsg{})
		assert.Nil(t, cmd)
	})

	t.Run("started task id is recorded and polling begins", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(importConfirmedMsg{})

		id := uuid.New()
		_, cmd := m.Update(taskStartedMsg{key: key, taskID: id})
		assert.Equal(t, id, m.importTaskID)
		assert.True(t, m.importingCompanies)
		require.NotNil(t, cmd, "a poll command follows a successful start")
	})

	t.Run("request failure clears the flag and surfaces the error", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(importConfirmedMsg{})

		_, cmd := m.Update(taskStartedMsg{key: key, err: errors.New("server unavailable")})
		assert.False(t, m.importingCompanies)
		assert.Equal(t, "server unavailable", m.importError)
		assert.False(t, m.deps.Poller.Tracker().Active(key), "slot released for retry")
		assert.Nil(t, cmd)
	})

	t.Run("completed task yields a summary", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(importConfirmedMsg{})
		m.Update(taskStartedMsg{key: key, taskID: uuid.New()})

		_, cmd := m.Update(taskFinishedMsg{key: key, task: &model.Task{
			Status: model.TaskStatusCompleted,
			Result: map[string]any{"created": float64(3), "updated": float64(1), "skipped": float64(2)},
		}})
		assert.False(t, m.importingCompanies)
		require.NotNil(t, m.importSummary)
		assert.Equal(t, 3, m.importSummary.Created)
		assert.Equal(t, 1, m.importSummary.Updated)
		assert.Equal(t, 2, m.importSummary.Skipped)
		require.NotNil(t, cmd, "company list reloads after import")
	})

	t.Run("failed task reports its error", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(importConfirmedMsg{})
		m.Update(taskStartedMsg{key: key, taskID: uuid.New()})

		m.Update(taskFinishedMsg{key: key, task: &model.Task{
			Status: model.TaskStatusFailed,
			Error:  "spreadsheet unreadable",
		}})
		assert.False(t, m.importingCompanies)
		assert.Equal(t, "spreadsheet unreadable", m.importError)
		assert.Nil(t, m.importSummary)
	})
}

func TestResearchFinished(t *testing.T) {
	t.Run("completed research updates the company", func(t *testing.T) {
		m := newTestModel(t)
		m.companies = []model.Company{{ID: 7, Name: "Initech", ResearchStatus: model.ResearchStatusPending}}

		m.Update(taskFinishedMsg{
			key:  task.Key{OwnerID: 7, Kind: task.KindResearch},
			task: &model.Task{Status: model.TaskStatusCompleted},
		})
		assert.Equal(t, model.TaskStatusCompleted, m.companies[0].ResearchStatus)
		assert.Equal(t, "Research completed", m.status)
	})

	t.Run("failed research records the error on the company", func(t *testing.T) {
		m := newTestModel(t)
		m.companies = []model.Company{{ID: 7, Name: "Initech"}}

		m.Update(taskFinishedMsg{
			key:  task.Key{OwnerID: 7, Kind: task.KindResearch},
			task: &model.Task{Status: model.TaskStatusFailed, Error: "crawl timed out"},
		})
		assert.Equal(t, model.TaskStatusFailed, m.companies[0].ResearchStatus)
		assert.Contains(t, m.errMsg, "crawl timed out")
	})
}

func TestGenerateReplyFinished(t *testing.T) {
	m := newTestModel(t)
	m.messages = []model.Message{{ID: 3, CompanyID: 1}}

	m.Update(taskFinishedMsg{
		key: task.Key{OwnerID: 3, Kind: task.KindGenerateReply},
		task: &model.Task{
			Status: model.TaskStatusCompleted,
			Result: map[string]any{"reply_message": "Thanks for reaching out."},
		},
	})
	assert.Equal(t, "Thanks for reaching out.", m.messages[0].ReplyMessage)
	assert.Equal(t, model.ReplyStatusGenerated, m.messages[0].ReplyStatus)
	assert.True(t, m.expandedReplies[3], "generated reply is shown expanded")
}

func TestCancelledPollIsSilent(t *testing.T) {
	m := newTestModel(t)

	m.Update(taskFinishedMsg{key: task.Key{OwnerID: 7, Kind: task.KindResearch}})
	assert.Empty(t, m.errMsg)
	assert.Empty(t, m.status)
}

func TestStaleCacheDoesNotClobberLiveData(t *testing.T) {
	m := newTestModel(t)

	m.Update(companiesLoadedMsg{companies: []model.Company{{ID: 1, Name: "Live"}}})
	require.False(t, m.loading)

	m.Update(companiesLoadedMsg{companies: []model.Company{{ID: 9, Name: "Stale"}}, fromCache: true})
	require.Len(t, m.companies, 1)
	assert.Equal(t, "Live", m.companies[0].Name)
}

func TestCacheSnapshotRendersBeforeLiveData(t *testing.T) {
	m := newTestModel(t)

	m.Update(companiesLoadedMsg{companies: []model.Company{{ID: 9, Name: "Cached"}}, fromCache: true})
	assert.True(t, m.fromCache)
	assert.Equal(t, "Cached", m.companies[0].Name)

	m.Update(companiesLoadedMsg{companies: []model.Company{{ID: 1, Name: "Live"}}})
	assert.False(t, m.fromCache)
	assert.Equal(t, "Live", m.companies[0].Name)
}

func TestBusNavigation(t *testing.T) {
	t.Run("navigate to company switches view and expands it", func(t *testing.T) {
		m := newTestModel(t)
		m.view = viewDaily
		m.companies = []model.Company{{ID: 1, Name: "Aardvark"}, {ID: 2, Name: "Bobcat"}}

		m.Update(BusMsg{Event: bus.NavigateToCompany{CompanyID: 2}})
		assert.Equal(t, viewCompanies, m.view)
		assert.Equal(t, 1, m.companyCursor)
		assert.True(t, m.expandedCompanies[2])
	})

	t.Run("navigate to message opens it on the daily view", func(t *testing.T) {
		m := newTestModel(t)
		m.messages = []model.Message{{ID: 3, CompanyID: 1}, {ID: 4, CompanyID: 2}}

		m.Update(BusMsg{Event: bus.NavigateToMessage{MessageID: 4}})
		assert.Equal(t, viewDaily, m.view)
		assert.True(t, m.expandedMessages[4])
	})
}

func TestShareStateRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m.view = viewDaily
	m.filterMode = "not-replied"
	m.sortNewestFirst = false
	m.includeAll = true

	got := urlstate.Parse(m.shareState())
	assert.Equal(t, urlstate.ViewDaily, got.View)
	assert.Equal(t, "not-replied", got.FilterMode)
	assert.False(t, got.SortNewestFirst)
	assert.True(t, got.IncludeAll)
}
