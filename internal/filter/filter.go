// Package filter shapes company and message lists for display: filter by
// view mode, sort by date or name with null dates always last.
package filter

import (
	"sort"
	"strings"

	"github.com/slinkp/outreach/internal/model"
)

// Message filter modes. Unknown modes behave like ModeAll.
const (
	ModeAll        = "all"
	ModeArchived   = "archived"
	ModeReplied    = "replied"
	ModeNotReplied = "not-replied"
)

// ValidMode reports whether mode is one of the known message filter modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeAll, ModeArchived, ModeReplied, ModeNotReplied:
		return true
	}
	return false
}

// Messages returns the subset of msgs matching mode. ModeAll returns the
// input slice unchanged, preserving order.
func Messages(msgs []model.Message, mode string) []model.Message {
	switch mode {
	case ModeArchived:
		return keepMessages(msgs, func(m *model.Message) bool { return m.Archived() })
	case ModeReplied:
		return keepMessages(msgs, func(m *model.Message) bool { return m.Replied() })
	case ModeNotReplied:
		return keepMessages(msgs, func(m *model.Message) bool { return !m.Replied() && !m.Archived() })
	default:
		return msgs
	}
}

func keepMessages(msgs []model.Message, keep func(*model.Message) bool) []model.Message {
	out := make([]model.Message, 0, len(msgs))
	for i := range msgs {
		if keep(&msgs[i]) {
			out = append(out, msgs[i])
		}
	}
	return out
}

// SortMessages returns a copy of msgs ordered by date. Messages without a
// date sort after all dated messages regardless of direction.
func SortMessages(msgs []model.Message, newestFirst bool) []model.Message {
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		if a == nil && b == nil {
			return false
		}
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if newestFirst {
			return a.After(*b)
		}
		return a.Before(*b)
	})
	return out
}

// Company filter modes.
const (
	CompanyModeAll        = "all"
	CompanyModePromising  = "promising"
	CompanyModeUnreviewed = "unreviewed"
	CompanyModeArchived   = "archived"
)

// Companies returns the subset of companies matching mode. Archived
// companies are excluded from every mode except "archived" and "all".
func Companies(companies []model.Company, mode string) []model.Company {
	switch mode {
	case CompanyModePromising:
		return keepCompanies(companies, func(c *model.Company) bool {
			return !c.Archived() && c.Promising != nil && *c.Promising
		})
	case CompanyModeUnreviewed:
		return keepCompanies(companies, func(c *model.Company) bool {
			return !c.Archived() && c.Promising == nil
		})
	case CompanyModeArchived:
		return keepCompanies(companies, func(c *model.Company) bool { return c.Archived() })
	default:
		return companies
	}
}

func keepCompanies(companies []model.Company, keep func(*model.Company) bool) []model.Company {
	out := make([]model.Company, 0, len(companies))
	for i := range companies {
		if keep(&companies[i]) {
			out = append(out, companies[i])
		}
	}
	return out
}

// SortCompanies returns a copy of companies ordered by name,
// case-insensitively, with ties broken by id for a stable listing.
func SortCompanies(companies []model.Company) []model.Company {
	out := make([]model.Company, len(companies))
	copy(out, companies)
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Name)
		b := strings.ToLower(out[j].Name)
		if a == b {
			return out[i].ID < out[j].ID
		}
		return a < b
	})
	return out
}
