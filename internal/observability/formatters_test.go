package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slinkp/outreach/internal/model"
)

func TestPrintCompanies(t *testing.T) {
	promising := true
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCompanies([]model.Company{
		{ID: 1, Name: "Initech", Promising: &promising, ResearchStatus: "completed"},
		{ID: 2, Name: "Globex"},
	})

	out := buf.String()
	assert.Contains(t, out, "Initech")
	assert.Contains(t, out, "promising")
	assert.Contains(t, out, "research: completed")
	assert.Contains(t, out, "2 companies")
}

func TestPrintImportSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintImportSummary(&model.ImportSummary{
		Created: 3,
		Updated: 1,
		Skipped: 2,
		Errors:  []string{"row 9: missing name"},
	})

	out := buf.String()
	assert.Contains(t, out, "IMPORT RESULT")
	assert.Contains(t, out, "Created: 3")
	assert.Contains(t, out, "row 9: missing name")
}

func TestPrintScanResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScanResult(&model.ScanResult{
		MessagesScanned: 50,
		MessagesFound:   4,
		CompaniesFound:  2,
	})

	out := buf.String()
	assert.Contains(t, out, "SCAN RESULT")
	assert.Contains(t, out, "Messages scanned:   50")
}

func TestPrintNilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintCompany(nil)
	p.PrintMessage(nil, false)
	p.PrintImportSummary(nil)
	p.PrintScanResult(nil)
	assert.Empty(t, buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "a very long comp...", truncate("a very long company name", 19))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
