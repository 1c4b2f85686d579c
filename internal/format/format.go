// Package format holds small pure formatting helpers shared by the
// dashboard views and the CLI output.
package format

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPreviewLimit is the truncation length for collapsed message rows.
const DefaultPreviewLimit = 200

// MessagePreview returns the text to show for a message row. Expanded or
// short messages pass through unmodified; longer ones are truncated to
// limit characters with a trailing ellipsis.
func MessagePreview(text string, expanded bool, limit int) string {
	if text == "" {
		return "No message content"
	}
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	if expanded || len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

// ResearchErrors renders the server's research_errors field, which may be a
// plain string, a list of strings, a list of {step, error} objects, or any
// other JSON value. List entries are joined with "; ".
func ResearchErrors(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, "; ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatErrorItem(item))
		}
		return strings.Join(parts, "; ")
	default:
		return stringify(v)
	}
}

func formatErrorItem(item any) string {
	switch val := item.(type) {
	case string:
		return val
	case map[string]any:
		step, _ := val["step"].(string)
		errMsg, _ := val["error"].(string)
		if step != "" && errMsg != "" {
			return fmt.Sprintf("%s: %s", step, errMsg)
		}
		if errMsg != "" {
			return errMsg
		}
		return stringify(val)
	default:
		return stringify(item)
	}
}

func stringify(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
