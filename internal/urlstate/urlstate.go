// Package urlstate round-trips dashboard view state through a URL-style
// query string, so a dashboard position can be shared or restored from the
// command line. Unknown parameters are preserved on rebuild.
package urlstate

import (
	"net/url"
	"strconv"

	"github.com/slinkp/outreach/internal/filter"
)

// Sort parameter values.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// View parameter values. An absent view parameter means the company list.
const (
	ViewCompanies = ""
	ViewDaily     = "daily"
)

// State is the shareable portion of the dashboard's view state.
type State struct {
	View            string
	FilterMode      string
	SortNewestFirst bool
	IncludeAll      bool
	// Message is the id of a message to open, zero when unset.
	Message int64
	// Anchor is the company id to scroll to, zero when unset.
	Anchor int64
}

// Default returns the state an unparameterized dashboard starts in.
func Default() State {
	return State{FilterMode: filter.ModeAll, SortNewestFirst: true}
}

// Parse decodes a query string (with or without a leading "?") into a
// State. Absent or invalid values fall back to defaults: filter mode "all",
// newest-first sort. A trailing "#id" fragment becomes the anchor.
func Parse(query string) State {
	s := Default()
	if query == "" {
		return s
	}
	if query[0] == '?' {
		query = query[1:]
	}
	if u, err := url.Parse(query); err == nil && u.Fragment != "" {
		if id, err := strconv.ParseInt(u.Fragment, 10, 64); err == nil {
			s.Anchor = id
		}
		query = u.RawQuery
		if u.RawQuery == "" && u.Path != "" {
			query = u.Path
		}
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return s
	}
	if values.Get("view") == ViewDaily {
		s.View = ViewDaily
	}
	if mode := values.Get("filterMode"); filter.ValidMode(mode) {
		s.FilterMode = mode
	}
	if values.Get("sort") == SortOldest {
		s.SortNewestFirst = false
	}
	if values.Get("include_all") == "true" {
		s.IncludeAll = true
	}
	if raw := values.Get("message"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			s.Message = id
		}
	}
	return s
}

// BuildUpdatedSearch rebuilds a query string from an existing one, setting
// the filterMode and sort parameters while preserving every unrelated
// parameter (view, include_all, and anything else a caller added).
func BuildUpdatedSearch(existing string, s State) string {
	if existing != "" && existing[0] == '?' {
		existing = existing[1:]
	}
	values, err := url.ParseQuery(existing)
	if err != nil {
		values = url.Values{}
	}

	values.Set("filterMode", s.FilterMode)
	if s.SortNewestFirst {
		values.Set("sort", SortNewest)
	} else {
		values.Set("sort", SortOldest)
	}

	encoded := values.Encode()
	if s.Anchor != 0 {
		encoded += "#" + strconv.FormatInt(s.Anchor, 10)
	}
	return encoded
}

// Encode renders the full shareable query string for a dashboard state,
// including the view selector and list options.
func Encode(s State) string {
	values := url.Values{}
	if s.View != "" {
		values.Set("view", s.View)
	}
	values.Set("filterMode", s.FilterMode)
	if s.SortNewestFirst {
		values.Set("sort", SortNewest)
	} else {
		values.Set("sort", SortOldest)
	}
	if s.IncludeAll {
		values.Set("include_all", "true")
	}
	if s.Message != 0 {
		values.Set("message", strconv.FormatInt(s.Message, 10))
	}
	encoded := values.Encode()
	if s.Anchor != 0 {
		encoded += "#" + strconv.FormatInt(s.Anchor, 10)
	}
	return encoded
}
