package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slinkp/outreach/internal/model"
)

func tp(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func testMessages() []model.Message {
	return []model.Message{
		{ID: 1, Subject: "replied", Date: tp("2026-08-01"), ReplySentAt: tp("2026-08-02")},
		{ID: 2, Subject: "fresh", Date: tp("2026-08-10")},
		{ID: 3, Subject: "archived", Date: tp("2026-07-01"), ArchivedAt: tp("2026-07-02")},
		{ID: 4, Subject: "company archived", Date: nil, CompanyArchivedAt: tp("2026-06-01")},
		{ID: 5, Subject: "no date"},
	}
}

func TestMessagesFilter(t *testing.T) {
	msgs := testMessages()

	t.Run("all returns input unchanged", func(t *testing.T) {
		got := Messages(msgs, ModeAll)
		require.Len(t, got, len(msgs))
		for i := range msgs {
			assert.Equal(t, msgs[i].ID, got[i].ID)
		}
	})

	t.Run("replied is subset with reply_sent_at", func(t *testing.T) {
		got := Messages(msgs, ModeReplied)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("archived includes company archival", func(t *testing.T) {
		got := Messages(msgs, ModeArchived)
		require.Len(t, got, 2)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, int64(4), got[1].ID)
	})

	t.Run("not-replied excludes replied and archived", func(t *testing.T) {
		got := Messages(msgs, ModeNotReplied)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, int64(5), got[1].ID)
	})

	t.Run("unknown mode behaves like all", func(t *testing.T) {
		got := Messages(msgs, "bogus")
		assert.Len(t, got, len(msgs))
	})
}

func TestSortMessages(t *testing.T) {
	msgs := testMessages()

	t.Run("newest first with nulls last", func(t *testing.T) {
		got := SortMessages(msgs, true)
		require.Len(t, got, 5)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, int64(1), got[1].ID)
		assert.Equal(t, int64(3), got[2].ID)
		// Null dates after all dated entries.
		assert.Nil(t, got[3].Date)
		assert.Nil(t, got[4].Date)
	})

	t.Run("oldest first keeps nulls last", func(t *testing.T) {
		got := SortMessages(msgs, false)
		require.Len(t, got, 5)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, int64(1), got[1].ID)
		assert.Equal(t, int64(2), got[2].ID)
		assert.Nil(t, got[3].Date)
		assert.Nil(t, got[4].Date)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := make([]int64, len(msgs))
		for i, m := range msgs {
			before[i] = m.ID
		}
		SortMessages(msgs, true)
		for i, m := range msgs {
			assert.Equal(t, before[i], m.ID)
		}
	})
}

func TestCompanies(t *testing.T) {
	yes, no := true, false
	companies := []model.Company{
		{ID: 1, Name: "zeta", Promising: &yes},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "beta", Promising: &no},
		{ID: 4, Name: "old", ArchivedAt: tp("2026-01-01"), Promising: &yes},
	}

	t.Run("promising excludes archived", func(t *testing.T) {
		got := Companies(companies, CompanyModePromising)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("unreviewed is nil promising only", func(t *testing.T) {
		got := Companies(companies, CompanyModeUnreviewed)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("archived", func(t *testing.T) {
		got := Companies(companies, CompanyModeArchived)
		require.Len(t, got, 1)
		assert.Equal(t, int64(4), got[0].ID)
	})

	t.Run("sort is case-insensitive by name", func(t *testing.T) {
		got := SortCompanies(companies)
		require.Len(t, got, 4)
		assert.Equal(t, "Alpha", got[0].Name)
		assert.Equal(t, "beta", got[1].Name)
		assert.Equal(t, "old", got[2].Name)
		assert.Equal(t, "zeta", got[3].Name)
	})
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeAll))
	assert.True(t, ValidMode(ModeNotReplied))
	assert.False(t, ValidMode("invalid"))
	assert.False(t, ValidMode(""))
}
