package gate

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := &Report{
		Metadata: ReportMetadata{
			Tool:          "termgate",
			Version:       "dev",
			Target:        "batch-2025-06-01.json",
			GeneratedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			ExecutionTime: 42 * time.Millisecond,
		},
		Phases: []PhaseResult{
			{Name: PhaseStructural, Status: StatusSuccess, Issues: []Issue{}},
			{Name: PhaseSemantic, Status: StatusSuccess, Issues: []Issue{{
				Path:     "terms.0.sections.whatItIs.content",
				Severity: SeverityWarning,
				Kind:     KindSemantic,
				Code:     CodeTruncationRisk,
				Message:  "content exceeds 240 characters and may be truncated in card view",
			}}},
			{Name: PhaseCrossReference, Status: StatusSuccess, Issues: []Issue{}},
			{Name: PhaseQuizReadiness, Status: StatusSkipped, SkipReason: "structural validation failed", Issues: []Issue{}},
		},
	}
	r.Summary.TermCount = 1
	r.Summary.Categories = []string{"Navigation"}
	r.summarize()
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"JSON", FormatJSON, false},
		{"concise", FormatConcise, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatJSONRoundTrips(t *testing.T) {
	out, err := NewFormatter(FormatJSON).FormatReport(sampleReport())
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Summary.Accepted)
	assert.Equal(t, 1, decoded.Summary.Warnings)
	require.Len(t, decoded.Phases, 4)
	assert.Equal(t, CodeTruncationRisk, decoded.Phases[1].Issues[0].Code)
}

func TestFormatMarkdown(t *testing.T) {
	out, err := NewFormatter(FormatMarkdown).FormatReport(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "# Batch Validation Report")
	assert.Contains(t, out, "batch-2025-06-01.json")
	assert.Contains(t, out, PhaseSemantic)
	assert.Contains(t, out, "content exceeds 240 characters")
	assert.Contains(t, out, "structural validation failed")
	// Raymond escapes HTML by default; the template must use triple-stash
	// so paths and messages come through verbatim.
	assert.NotContains(t, out, "&quot;")
}

func TestFormatConcise(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := NewFormatter(FormatConcise).formatConcise(sampleReport())
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "terms: 1")
	assert.Contains(t, out, "warnings: 1")
	assert.Contains(t, out, PhaseStructural+": ok")
	assert.Contains(t, out, PhaseSemantic+": 1 warning(s)")
	assert.Contains(t, out, PhaseQuizReadiness+": skipped")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormatConciseRejected(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := sampleReport()
	r.Phases[0].Issues = append(r.Phases[0].Issues, Issue{
		Severity: SeverityError, Kind: KindStructural, Message: "id must be kebab-case",
	})
	r.summarize()

	out := NewFormatter(FormatConcise).formatConcise(r)
	assert.Contains(t, out, "REJECTED")
	assert.Contains(t, out, "1 blocking issue(s)")
}

func TestWriteReportAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).WriteReport(&buf, sampleReport()))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.False(t, strings.HasSuffix(buf.String(), "\n\n"))
}

func TestFormatUnsupported(t *testing.T) {
	_, err := NewFormatter(OutputFormat("yaml")).FormatReport(sampleReport())
	assert.Error(t, err)
}
