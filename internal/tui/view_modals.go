package tui

import (
	"fmt"
	"strings"
)

func (m *Model) renderModal() string {
	switch m.modal {
	case modalConfirm:
		return modalStyle.Render(m.confirm.prompt + "\n\n" + helpStyle.Render("y confirm · n cancel"))

	case modalResearch:
		var b strings.Builder
		b.WriteString("Submit a company for research\n\n")
		b.WriteString("URL:  " + m.researchURL.View() + "\n")
		b.WriteString("Name: " + m.researchName.View() + "\n")
		if m.researchErr != "" {
			b.WriteString("\n" + errorStyle.Render(m.researchErr))
		}
		b.WriteString("\n" + helpStyle.Render("tab switch field · enter submit · esc cancel"))
		return modalStyle.Render(b.String())

	case modalScan:
		var b strings.Builder
		b.WriteString("Scan recruiter emails\n\n")
		b.WriteString("Max messages: " + m.scanMax.View() + "\n")
		research := "no"
		if m.scanDoResearch {
			research = "yes"
		}
		b.WriteString("Research new companies: " + research + "\n")
		if m.scanError != "" {
			b.WriteString("\n" + errorStyle.Render(m.scanError))
		}
		b.WriteString("\n" + helpStyle.Render("ctrl+r toggle research · enter start · esc cancel"))
		return modalStyle.Render(b.String())

	case modalMerge:
		var b strings.Builder
		canonical := m.companyByID(m.mergeCompanyID)
		name := fmt.Sprintf("company %d", m.mergeCompanyID)
		if canonical != nil {
			name = canonical.Name
		}
		b.WriteString("Potential duplicates of " + name + "\n\n")
		switch {
		case m.mergeLoading:
			b.WriteString(m.spinner.View() + " looking for duplicates...")
		case len(m.mergeCandidates) == 0:
			b.WriteString(mutedStyle.Render("No potential duplicates found."))
		default:
			for i, d := range m.mergeCandidates {
				cursor := "  "
				if i == m.mergeCursor {
					cursor = "> "
				}
				line := fmt.Sprintf("%s%s (%.0f%% match)", cursor, d.Company.Name, d.Confidence*100)
				if d.Reason != "" {
					line += "  " + mutedStyle.Render(d.Reason)
				}
				b.WriteString(line + "\n")
			}
		}
		b.WriteString("\n" + helpStyle.Render("j/k move · enter merge · esc cancel"))
		return modalStyle.Render(b.String())

	case modalEditReply:
		var b strings.Builder
		b.WriteString("Edit reply\n\n")
		b.WriteString(m.replyInput.View() + "\n")
		b.WriteString("\n" + helpStyle.Render("ctrl+s save · esc cancel"))
		return modalStyle.Render(b.String())
	}
	return ""
}
