// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/slinkp/outreach/internal/format"
	"github.com/slinkp/outreach/internal/model"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCompanies outputs a one-line-per-company listing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCompanies(companies []model.Company) {
	for _, c := range companies {
		var flags []string
		if c.Promising != nil {
			if *c.Promising {
				flags = append(flags, "promising")
			} else {
				flags = append(flags, "not promising")
			}
		}
		if c.ResearchStatus != "" {
			flags = append(flags, "research: "+c.ResearchStatus)
		}
		if c.Archived() {
			flags = append(flags, "archived")
		}
		line := fmt.Sprintf("%6d  %s", c.ID, c.Name)
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintf(p.out, "\n%d companies\n", len(companies))
}

// PrintCompany outputs a detailed view of one company.
func (p *Printer) PrintCompany(c *model.Company) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %d\n", c.ID))
	if c.URL != nil && *c.URL != "" {
		sb.WriteString(fmt.Sprintf("URL:      %s\n", *c.URL))
	}
	if c.ResearchStatus != "" {
		sb.WriteString(fmt.Sprintf("Research: %s\n", c.ResearchStatus))
	}
	if errText := format.ResearchErrors(c.ResearchErrors); errText != "" {
		sb.WriteString(fmt.Sprintf("Errors:   %s\n", errText))
	}

	var aliases []string
	for _, a := range c.Aliases {
		if a.Active {
			aliases = append(aliases, a.Alias)
		}
	}
	if len(aliases) > 0 {
		sb.WriteString(fmt.Sprintf("Aliases:  %s\n", strings.Join(aliases, ", ")))
	}
	if c.Notes != nil && *c.Notes != "" {
		sb.WriteString(fmt.Sprintf("Notes:    %s\n", *c.Notes))
	}

	if len(c.Messages) > 0 {
		sb.WriteString(fmt.Sprintf("\nMessages (%d):\n", len(c.Messages)))
		count := min(len(c.Messages), maxItemsToShow)
		for i := 0; i < count; i++ {
			msg := c.Messages[i]
			sb.WriteString(fmt.Sprintf("  • %s — %s\n", msg.Sender, msg.Subject))
		}
		if len(c.Messages) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(c.Messages)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(c.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMessages outputs a one-line-per-message listing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessages(msgs []model.Message) {
	for _, msg := range msgs {
		date := "no date   "
		if msg.Date != nil {
			date = msg.Date.Format("2006-01-02")
		}
		var flags []string
		if msg.Replied() {
			flags = append(flags, "replied")
		} else if msg.ReplyStatus == model.ReplyStatusGenerated {
			flags = append(flags, "draft")
		}
		if msg.Archived() {
			flags = append(flags, "archived")
		}
		line := fmt.Sprintf("%6d  %s  %-20s  %s", msg.ID, date, truncate(msg.CompanyName, 20), msg.Subject)
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintf(p.out, "\n%d messages\n", len(msgs))
}

// PrintMessage outputs a full message with its preview and reply.
func (p *Printer) PrintMessage(msg *model.Message, expanded bool) {
	if msg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From:    %s\n", msg.Sender))
	if msg.Date != nil {
		sb.WriteString(fmt.Sprintf("Date:    %s\n", msg.Date.Format("2006-01-02 15:04")))
	}
	sb.WriteString(fmt.Sprintf("Company: %s\n\n", msg.CompanyName))
	sb.WriteString(format.MessagePreview(msg.Message, expanded, format.DefaultPreviewLimit))
	if msg.ReplyMessage != "" {
		sb.WriteString("\n\n--- reply ---\n")
		sb.WriteString(msg.ReplyMessage)
	}

	p.printBox(msg.Subject, sb.String())
}

// PrintImportSummary outputs the per-item import counters verbatim.
func (p *Printer) PrintImportSummary(summary *model.ImportSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Created: %d\n", summary.Created))
	sb.WriteString(fmt.Sprintf("Updated: %d\n", summary.Updated))
	sb.WriteString(fmt.Sprintf("Skipped: %d", summary.Skipped))
	if len(summary.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("\nErrors:  %s", strings.Join(summary.Errors, "; ")))
	}

	p.printBox("IMPORT RESULT", sb.String())
}

// PrintScanResult outputs the counters from an email scan.
func (p *Printer) PrintScanResult(result *model.ScanResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Messages scanned:   %d\n", result.MessagesScanned))
	sb.WriteString(fmt.Sprintf("Recruiter messages: %d\n", result.MessagesFound))
	sb.WriteString(fmt.Sprintf("Companies found:    %d", result.CompaniesFound))

	p.printBox("SCAN RESULT", sb.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
