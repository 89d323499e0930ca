package gate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolex/termgate/pkg/model"
)

func TestStructuralAcceptsValidBatch(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{
		validTerm("glide-slope", model.CategoryNavigation),
		validTerm("static-port", model.CategoryFlightInstruments),
	}}

	result, decoded := runStructural(encodeBatch(t, batch))

	require.NotNil(t, decoded)
	assert.Empty(t, result.Issues)
	assert.False(t, result.Blocking())
	assert.Len(t, decoded.Terms, 2)
}

func TestStructuralRejectsNonKebabID(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("glide-slope", model.CategoryNavigation)}}
	batch.Terms[0].ID = "Flight_Level"

	result, _ := runStructural(encodeBatch(t, batch))

	require.True(t, result.Blocking())
	found := false
	for _, i := range result.Issues {
		if strings.Contains(i.Message, "Flight_Level") && i.Kind == KindStructural {
			found = true
		}
	}
	assert.True(t, found, "expected a structural issue naming the bad id, got %v", result.Issues)
	// Both passes flag the same violation, so agreement holds.
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsDuplicateIDsWithinBatch(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{
		validTerm("pitot-tube", model.CategoryFlightInstruments),
		validTerm("pitot-tube", model.CategoryFlightInstruments),
	}}

	result, _ := runStructural(encodeBatch(t, batch))

	require.True(t, result.Blocking())
	found := false
	for _, i := range result.Issues {
		if strings.Contains(i.Message, "duplicate id") {
			found = true
		}
	}
	assert.True(t, found, "expected duplicate id issue, got %v", result.Issues)
	// Uniqueness is imperative-only; the agreement check must not treat
	// the schema pass's silence as drift.
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsOversizedSection(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("altimeter", model.CategoryFlightInstruments)}}
	batch.Terms[0].Sections[model.SectionWhatItIs] = model.Section{Content: strings.Repeat("x", 2001)}

	result, _ := runStructural(encodeBatch(t, batch))

	require.True(t, result.Blocking())
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsShortSection(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("altimeter", model.CategoryFlightInstruments)}}
	batch.Terms[0].Sections[model.SectionWhatItIs] = model.Section{Content: "too short"}

	result, _ := runStructural(encodeBatch(t, batch))
	assert.True(t, result.Blocking())
}

func TestStructuralRejectsUnknownCategory(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("ram-air", model.CategoryPneumaticSystems)}}
	batch.Terms[0].Category = "Avionics"

	result, _ := runStructural(encodeBatch(t, batch))
	assert.True(t, result.Blocking())
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsUnknownSection(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("yaw-damper", model.CategoryFlightControls)}}
	batch.Terms[0].Sections["etymology"] = model.Section{Content: "From the Old English, reportedly."}

	result, _ := runStructural(encodeBatch(t, batch))
	assert.True(t, result.Blocking())
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsMissingWhatItIs(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("spoilers", model.CategoryFlightControls)}}
	batch.Terms[0].Sections = map[model.SectionName]model.Section{
		model.SectionExample: {Content: "Deployed on touchdown to dump lift."},
	}

	result, _ := runStructural(encodeBatch(t, batch))
	assert.True(t, result.Blocking())
}

func TestStructuralRejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"terms":[{
		"id":"glide-slope","title":"Glide Slope","category":"Navigation",
		"sections":{"whatItIs":{"content":"Vertical guidance beam for an instrument approach."}},
		"createdAt":"2025-06-01T00:00:00Z","updatedAt":"2025-06-01T00:00:00Z",
		"popularity": 11
	}]}`)

	result, _ := runStructural(raw)
	assert.True(t, result.Blocking())
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsEmptyBatch(t *testing.T) {
	result, _ := runStructural([]byte(`{"terms":[]}`))
	assert.True(t, result.Blocking())
}

func TestStructuralRejectsMarkup(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("flaps", model.CategoryFlightControls)}}
	batch.Terms[0].Sections[model.SectionWhatItIs] = model.Section{
		Content: "Surfaces that **increase lift** at low airspeeds.",
	}

	result, _ := runStructural(encodeBatch(t, batch))

	require.True(t, result.Blocking())
	// Markup is an imperative-only rule; no drift anomaly expected.
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralRejectsBadRelationship(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{validTerm("localizer", model.CategoryNavigationSystems)}}
	batch.Terms[0].Relationships = []model.Relationship{
		{TermID: "glide-slope", Type: "child"},
	}

	result, _ := runStructural(encodeBatch(t, batch))
	assert.True(t, result.Blocking())
	assert.Empty(t, issuesWithCode(result.Issues, CodeDualPassDisagreement))
}

func TestStructuralCollectsAllViolations(t *testing.T) {
	batch := &model.Batch{Terms: []model.Term{
		validTerm("one-bad_id", model.CategoryNavigation),
		validTerm("two", model.CategoryNavigation),
	}}
	batch.Terms[1].Title = ""
	batch.Terms[1].Category = "Nowhere"

	result, _ := runStructural(encodeBatch(t, batch))

	// At least three distinct violations across two terms, all collected.
	assert.GreaterOrEqual(t, len(result.Issues), 3)
}

func TestStructuralRejectsInvalidJSON(t *testing.T) {
	result, batch := runStructural([]byte(`{not json`))
	assert.Nil(t, batch)
	assert.True(t, result.Blocking())
}
