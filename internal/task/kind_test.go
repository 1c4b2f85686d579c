package task

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slinkp/outreach/internal/model"
)

func newTestID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestApplyToCompany(t *testing.T) {
	t.Run("failed research records the error", func(t *testing.T) {
		c := &model.Company{ID: 1, Name: "Initech"}
		applied := ApplyToCompany(KindResearch, c, &model.Task{
			Status: model.TaskStatusFailed,
			Error:  "crawl timed out",
		})
		require.True(t, applied)
		assert.Equal(t, model.TaskStatusFailed, c.ResearchStatus)
		assert.Equal(t, "crawl timed out", c.ResearchErrors)
	})

	t.Run("completed research clears previous errors", func(t *testing.T) {
		c := &model.Company{ID: 1, ResearchErrors: "old failure"}
		ApplyToCompany(KindResearch, c, &model.Task{Status: model.TaskStatusCompleted})
		assert.Equal(t, model.TaskStatusCompleted, c.ResearchStatus)
		assert.Nil(t, c.ResearchErrors)
	})

	t.Run("kinds without a company strategy report false", func(t *testing.T) {
		c := &model.Company{}
		assert.False(t, ApplyToCompany(KindImport, c, &model.Task{Status: model.TaskStatusCompleted}))
	})
}

func TestApplyToMessage(t *testing.T) {
	t.Run("generated reply lands on the message", func(t *testing.T) {
		m := &model.Message{ID: 3}
		applied := ApplyToMessage(KindGenerateReply, m, &model.Task{
			Status: model.TaskStatusCompleted,
			Result: map[string]any{"reply_message": "Thanks for reaching out."},
		})
		require.True(t, applied)
		assert.Equal(t, model.ReplyStatusGenerated, m.ReplyStatus)
		assert.Equal(t, "Thanks for reaching out.", m.ReplyMessage)
	})

	t.Run("failed generation leaves the message unchanged", func(t *testing.T) {
		m := &model.Message{ID: 3, ReplyMessage: "draft"}
		ApplyToMessage(KindGenerateReply, m, &model.Task{Status: model.TaskStatusFailed, Error: "llm error"})
		assert.Equal(t, "draft", m.ReplyMessage)
		assert.Empty(t, m.ReplyStatus)
	})

	t.Run("send marks replied and archived", func(t *testing.T) {
		m := &model.Message{ID: 4, ReplyMessage: "ready"}
		ApplyToMessage(KindSendReply, m, &model.Task{
			Status: model.TaskStatusCompleted,
			Result: map[string]any{"reply_sent_at": "2026-08-20T10:00:00Z"},
		})
		assert.Equal(t, model.ReplyStatusSent, m.ReplyStatus)
		require.NotNil(t, m.ReplySentAt)
		assert.Equal(t, "2026-08-20T10:00:00Z", m.ReplySentAt.Format("2006-01-02T15:04:05Z"))
		assert.NotNil(t, m.ArchivedAt)
	})
}

func TestTrackerSingleLoopInvariant(t *testing.T) {
	tracker := NewTracker()
	key := Key{OwnerID: 1, Kind: KindResearch}

	id := newTestID(t)
	require.True(t, tracker.Start(key, id))
	assert.False(t, tracker.Start(key, id), "second start for the same key is rejected")

	// A different kind for the same owner is independent.
	assert.True(t, tracker.Start(Key{OwnerID: 1, Kind: KindGenerateReply}, id))

	tracker.Stop(key)
	assert.True(t, tracker.Start(key, id), "key is reusable after stop")
}

func TestTrackerOwners(t *testing.T) {
	tracker := NewTracker()
	id := newTestID(t)
	require.True(t, tracker.Start(Key{OwnerID: 1, Kind: KindResearch}, id))
	require.True(t, tracker.Start(Key{OwnerID: 2, Kind: KindResearch}, id))
	require.True(t, tracker.Start(Key{OwnerID: 3, Kind: KindGenerateReply}, id))

	owners := tracker.Owners(KindResearch)
	assert.ElementsMatch(t, []int64{1, 2}, owners)
}
