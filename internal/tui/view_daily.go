package tui

import (
	"fmt"
	"strings"

	"github.com/slinkp/outreach/internal/format"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/task"
)

func (m *Model) renderDaily() string {
	msgs := m.visibleMessages()
	if len(msgs) == 0 {
		return mutedStyle.Render("No messages match the current filter.")
	}
	if m.dailyCursor >= len(msgs) {
		m.dailyCursor = len(msgs) - 1
	}

	sortLabel := "newest first"
	if !m.sortNewestFirst {
		sortLabel = "oldest first"
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("filter: %s · %s · %d messages", m.filterMode, sortLabel, len(msgs))))
	b.WriteString("\n")

	start, end := m.visibleWindow(len(msgs), m.dailyCursor)
	for i := start; i < end; i++ {
		msg := &msgs[i]
		b.WriteString(m.renderMessageRow(msg, i == m.dailyCursor))
		b.WriteString("\n")
		b.WriteString(m.renderMessageBody(msg))
	}
	return b.String()
}

func (m *Model) renderMessageRow(msg *model.Message, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	date := "no date"
	if msg.Date != nil {
		date = msg.Date.Format("2006-01-02")
	}

	company := msg.CompanyName
	if company == "" {
		company = fmt.Sprintf("company %d", msg.CompanyID)
	}

	var badges []string
	tracker := m.deps.Poller.Tracker()
	switch {
	case tracker.Active(task.Key{OwnerID: msg.ID, Kind: task.KindGenerateReply}):
		badges = append(badges, m.spinner.View()+" generating")
	case tracker.Active(task.Key{OwnerID: msg.ID, Kind: task.KindSendReply}):
		badges = append(badges, m.spinner.View()+" sending")
	case msg.Replied():
		badges = append(badges, statusStyle.Render("replied"))
	case msg.ReplyStatus == model.ReplyStatusGenerated:
		badges = append(badges, mutedStyle.Render("draft ready"))
	}
	if tracker.Active(task.Key{OwnerID: msg.CompanyID, Kind: task.KindResearch}) {
		badges = append(badges, m.spinner.View()+" researching")
	}
	if msg.Archived() {
		badges = append(badges, archivedStyle.Render("archived"))
	}

	row := fmt.Sprintf("%s%s  %s  %s — %s", cursor, date, company, msg.Sender, msg.Subject)
	if len(badges) > 0 {
		row += "  " + strings.Join(badges, " ")
	}
	if selected {
		return selectedStyle.Render(row)
	}
	return row
}

func (m *Model) renderMessageBody(msg *model.Message) string {
	var b strings.Builder
	indent := "    "

	preview := format.MessagePreview(msg.Message, m.expandedMessages[msg.ID], format.DefaultPreviewLimit)
	b.WriteString(indent + strings.ReplaceAll(preview, "\n", "\n"+indent) + "\n")

	if errText := format.ResearchErrors(msg.ResearchErrors); errText != "" {
		b.WriteString(indent + errorStyle.Render("Research errors: "+errText) + "\n")
	}

	if m.expandedReplies[msg.ID] && msg.ReplyMessage != "" {
		b.WriteString(indent + mutedStyle.Render("--- reply ---") + "\n")
		b.WriteString(indent + strings.ReplaceAll(msg.ReplyMessage, "\n", "\n"+indent) + "\n")
	}
	return b.String()
}
