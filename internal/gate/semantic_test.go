package gate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolex/termgate/pkg/model"
)

func TestSemanticTruncationAdvisory(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("transponder", model.CategoryCommunication)}}
	batch.Terms[0].Sections[model.SectionWhatItIs] = model.Section{Content: strings.Repeat("a", 241)}

	result := runSemantic(batch, 240)

	warnings := issuesWithCode(result.Issues, CodeTruncationRisk)
	require.Len(t, warnings, 1)
	assert.Equal(t, SeverityWarning, warnings[0].Severity)
	assert.False(t, result.Blocking(), "truncation advisory must not block acceptance")
}

func TestSemanticNoAdvisoryAtLimit(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("transponder", model.CategoryCommunication)}}
	batch.Terms[0].Sections[model.SectionWhatItIs] = model.Section{Content: strings.Repeat("a", 240)}

	result := runSemantic(batch, 240)
	assert.Empty(t, issuesWithCode(result.Issues, CodeTruncationRisk))
}

func TestSemanticMarkupSweep(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("autopilot", model.CategoryFlightControls)}}
	batch.Terms[0].Sections[model.SectionWhatItIs] = model.Section{
		Content: "See [the manual](https://example.com) for engagement limits.",
	}

	result := runSemantic(batch, 240)

	warnings := issuesWithCode(result.Issues, CodeMarkupDetected)
	require.Len(t, warnings, 1)
	assert.Equal(t, SeverityWarning, warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, "link")
}

func TestSemanticCleanContent(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("autopilot", model.CategoryFlightControls)}}
	result := runSemantic(batch, 240)
	assert.Empty(t, result.Issues)
}

func TestDetectMarkup(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"plain", "Plain text about rudder authority and crosswind limits.", nil},
		{"bold", "The **critical** engine.", []string{"bold"}},
		{"italic star", "The *critical* engine.", []string{"italic"}},
		{"italic underscore", "The _critical_ engine.", []string{"italic"}},
		{"heading", "# Overview\nRudder basics.", []string{"heading"}},
		{"link", "See [docs](https://x.test).", []string{"link"}},
		{"image", "As shown: ![diagram](img.png).", []string{"image"}},
		{"inline code", "Set `QNH` before descent.", []string{"inline code"}},
		{"fenced code", "```\nQNH 1013\n```", []string{"fenced code"}},
		{"bold not double-reported as italic", "Only **bold** here, nothing else.", []string{"bold"}},
		{"snake case is not italic", "Uses the value flight_level_350 internally.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectMarkup(tt.content))
		})
	}
}
