package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.modal != modalNone {
		b.WriteString(m.renderModal())
	} else if m.view == viewCompanies {
		b.WriteString(m.renderCompanies())
	} else {
		b.WriteString(m.renderDaily())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	companiesTab := tabInactiveStyle.Render("Companies")
	dailyTab := tabInactiveStyle.Render("Daily")
	if m.view == viewCompanies {
		companiesTab = tabActiveStyle.Render("Companies")
	} else {
		dailyTab = tabActiveStyle.Render("Daily")
	}

	title := titleStyle.Render("Outreach")
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, title, companiesTab, dailyTab)

	var extras []string
	if m.fromCache {
		extras = append(extras, mutedStyle.Render("(cached snapshot)"))
	}
	if m.loading {
		extras = append(extras, m.spinner.View()+" loading")
	}
	if m.importingCompanies {
		extras = append(extras, m.spinner.View()+" importing")
	}
	if m.scanning {
		extras = append(extras, m.spinner.View()+" scanning")
	}
	if len(extras) > 0 {
		tabs += "  " + strings.Join(extras, "  ")
	}
	return tabs
}

func (m *Model) renderFooter() string {
	var lines []string

	if m.shareString != "" {
		lines = append(lines, statusStyle.Render("State: ?"+m.shareString))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	if m.importError != "" {
		lines = append(lines, errorStyle.Render("Import failed: "+m.importError))
	}
	if m.importSummary != nil {
		s := m.importSummary
		line := fmt.Sprintf("Import: %d created, %d updated, %d skipped", s.Created, s.Updated, s.Skipped)
		if len(s.Errors) > 0 {
			line += fmt.Sprintf(", %d errors: %s", len(s.Errors), strings.Join(s.Errors, "; "))
		}
		lines = append(lines, statusStyle.Render(line))
	}
	if m.scanError != "" {
		lines = append(lines, errorStyle.Render("Scan failed: "+m.scanError))
	}
	if m.scanResult != nil {
		r := m.scanResult
		lines = append(lines, statusStyle.Render(fmt.Sprintf(
			"Scan: %d scanned, %d recruiter messages, %d companies", r.MessagesScanned, r.MessagesFound, r.CompaniesFound)))
	}

	help := "tab views · j/k move · enter expand · f filter · s sort · r research · n new · i import · c scan · u share · q quit"
	if m.view == viewDaily {
		help = "tab views · j/k move · enter expand · v reply · g generate · e edit · S send · A archive · o company · q quit"
	}
	lines = append(lines, helpStyle.Render(help))
	return strings.Join(lines, "\n")
}

// visibleWindow clamps a list to the rows that fit on screen, keeping the
// cursor visible.
func (m *Model) visibleWindow(total, cursor int) (int, int) {
	rows := m.height - 6
	if rows < 5 {
		rows = 20
	}
	if total <= rows {
		return 0, total
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > total {
		end = total
		start = end - rows
	}
	return start, end
}
