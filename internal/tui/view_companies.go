package tui

import (
	"fmt"
	"strings"

	"github.com/slinkp/outreach/internal/format"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/task"
)

func (m *Model) renderCompanies() string {
	companies := m.visibleCompanies()
	if len(companies) == 0 {
		return mutedStyle.Render("No companies. Press n to submit one for research.")
	}
	if m.companyCursor >= len(companies) {
		m.companyCursor = len(companies) - 1
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("filter: %s · %d companies", m.companyFilterMode, len(companies))))
	b.WriteString("\n")

	start, end := m.visibleWindow(len(companies), m.companyCursor)
	for i := start; i < end; i++ {
		c := &companies[i]
		b.WriteString(m.renderCompanyRow(c, i == m.companyCursor))
		b.WriteString("\n")
		if m.expandedCompanies[c.ID] {
			b.WriteString(m.renderCompanyDetail(c))
		}
	}
	return b.String()
}

func (m *Model) renderCompanyRow(c *model.Company, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	name := c.Name
	if c.Archived() {
		name = archivedStyle.Render(name)
	} else if c.Promising != nil && *c.Promising {
		name = promisingStyle.Render(name)
	}

	var badges []string
	switch {
	case m.deps.Poller.Tracker().Active(task.Key{OwnerID: c.ID, Kind: task.KindResearch}):
		badges = append(badges, m.spinner.View()+" researching")
	case c.ResearchStatus == model.ResearchStatusFailed:
		badges = append(badges, errorStyle.Render("research failed"))
	case c.ResearchStatus == model.ResearchStatusCompleted:
		badges = append(badges, mutedStyle.Render("researched"))
	}
	if c.Promising != nil && !*c.Promising {
		badges = append(badges, mutedStyle.Render("not promising"))
	}

	row := cursor + name
	if len(badges) > 0 {
		row += "  " + strings.Join(badges, " ")
	}
	if selected {
		return selectedStyle.Render(row)
	}
	return row
}

func (m *Model) renderCompanyDetail(c *model.Company) string {
	var b strings.Builder
	indent := "    "

	if c.URL != nil && *c.URL != "" {
		b.WriteString(indent + mutedStyle.Render(*c.URL) + "\n")
	}

	var aliases []string
	for _, a := range c.Aliases {
		if a.Active {
			aliases = append(aliases, a.Alias)
		}
	}
	if len(aliases) > 0 {
		b.WriteString(indent + "aka: " + strings.Join(aliases, ", ") + "\n")
	}

	if errText := format.ResearchErrors(c.ResearchErrors); errText != "" {
		b.WriteString(indent + errorStyle.Render("Research errors: "+errText) + "\n")
	}
	if c.Notes != nil && *c.Notes != "" {
		b.WriteString(indent + *c.Notes + "\n")
	}
	if n := len(c.Messages); n > 0 {
		b.WriteString(indent + mutedStyle.Render(fmt.Sprintf("%d messages", n)) + "\n")
	}
	return b.String()
}
