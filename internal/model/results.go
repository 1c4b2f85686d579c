package model

import "strconv"

// ScanResultFrom extracts scan counters from a terminal task's result map.
func ScanResultFrom(result map[string]any) *ScanResult {
	return &ScanResult{
		MessagesScanned: intField(result, "messages_scanned"),
		MessagesFound:   intField(result, "messages_found"),
		CompaniesFound:  intField(result, "companies_found"),
	}
}

// ImportSummaryFrom extracts the per-item import counters from a terminal
// task's result map. The counters are displayed verbatim.
func ImportSummaryFrom(result map[string]any) *ImportSummary {
	summary := &ImportSummary{
		Created: intField(result, "created"),
		Updated: intField(result, "updated"),
		Skipped: intField(result, "skipped"),
	}
	if raw, ok := result["errors"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				summary.Errors = append(summary.Errors, s)
			}
		}
	}
	return summary
}

// intField reads a numeric field from decoded JSON, where numbers arrive
// as float64.
func intField(result map[string]any, key string) int {
	switch v := result[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
