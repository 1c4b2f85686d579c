package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagePreview(t *testing.T) {
	long := strings.Repeat("a", 250)

	tests := []struct {
		name     string
		text     string
		expanded bool
		limit    int
		expected string
	}{
		{"Long message truncated", long, false, 200, long[:200] + "..."},
		{"Expanded returns full text", long, true, 200, long},
		{"Short message unmodified", "hello", false, 200, "hello"},
		{"Exactly at limit unmodified", strings.Repeat("b", 200), false, 200, strings.Repeat("b", 200)},
		{"One past limit truncated", strings.Repeat("c", 201), false, 200, strings.Repeat("c", 200) + "..."},
		{"Missing text", "", false, 200, "No message content"},
		{"Missing text expanded", "", true, 200, "No message content"},
		{"Zero limit uses default", long, false, 0, long[:DefaultPreviewLimit] + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MessagePreview(tt.text, tt.expanded, tt.limit)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResearchErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Nil", nil, ""},
		{"Plain string", "crawl timed out", "crawl timed out"},
		{"String slice", []string{"one", "two"}, "one; two"},
		{
			"Step objects",
			[]any{
				map[string]any{"step": "levels", "error": "not found"},
				map[string]any{"step": "contacts", "error": "timeout"},
			},
			"levels: not found; contacts: timeout",
		},
		{
			"Mixed strings and objects",
			[]any{"plain failure", map[string]any{"step": "crawl", "error": "403"}},
			"plain failure; crawl: 403",
		},
		{
			"Object missing step",
			[]any{map[string]any{"error": "boom"}},
			"boom",
		},
		{
			"Arbitrary object falls back to JSON",
			map[string]any{"code": float64(500)},
			`{"code":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResearchErrors(tt.input))
		})
	}
}
