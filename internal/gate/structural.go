package gate

import (
	"fmt"
	"unicode/utf8"

	"github.com/aerolex/termgate/pkg/model"
	"github.com/aerolex/termgate/pkg/schema"
)

// batchSchemaName is the embedded declarative contract for batch payloads.
const batchSchemaName = "term-batch-v1.0.0"

// Title, section, and relationship bounds. These mirror the embedded
// schema; the imperative pass enforces them independently so drift
// between the documented contract and the code shows up as a reportable
// anomaly instead of passing silently.
const (
	titleMaxLen         = 200
	sectionMinLen       = 10
	sectionMaxLen       = 2000
	relationshipDescMin = 10
	relationshipDescMax = 500
)

// runStructural performs the dual-pass structural validation: the
// declarative JSON Schema pass and the imperative rule engine must agree
// on the schema-expressible contract. The imperative pass additionally
// enforces batch-local id uniqueness and plain-text content, which JSON
// Schema cannot express. Returns the decoded batch when decoding
// succeeded, for use by later phases.
func runStructural(raw []byte) (*PhaseResult, *model.Batch) {
	result := &PhaseResult{Name: PhaseStructural, Status: StatusSuccess, Issues: []Issue{}}

	schemaValid, schemaErrors := declarativePass(raw)
	batch, issues, coveredViolations := imperativePass(raw)
	result.Issues = append(result.Issues, issues...)

	// Dual-pass agreement: each pass independently enforces the declared
	// contract. Disagreement means the schema and the rule engine have
	// drifted apart and is itself a reportable defect.
	imperativeValid := coveredViolations == 0
	if schemaValid != imperativeValid {
		result.Issues = append(result.Issues, Issue{
			Path:     "root",
			Severity: SeverityError,
			Kind:     KindStructural,
			Code:     CodeDualPassDisagreement,
			Message: fmt.Sprintf(
				"declarative schema pass (valid=%t) and imperative rule pass (valid=%t) disagree; the validator contract has drifted",
				schemaValid, imperativeValid),
		})
		// Surface the schema pass findings the rule engine missed.
		if !schemaValid && imperativeValid {
			result.Issues = append(result.Issues, schemaErrors...)
		}
	}

	return result, batch
}

// declarativePass validates the raw payload against the embedded JSON
// Schema. Returns validity plus the schema findings as issues.
func declarativePass(raw []byte) (bool, []Issue) {
	validator, err := schema.GetEmbeddedValidator(batchSchemaName)
	if err != nil {
		return false, []Issue{{
			Path:     "root",
			Severity: SeverityError,
			Kind:     KindStructural,
			Message:  fmt.Sprintf("schema unavailable: %v", err),
		}}
	}
	res, err := validator.ValidateBytes(raw)
	if err != nil {
		// Unparseable JSON fails both passes.
		return false, []Issue{{
			Path:     "root",
			Severity: SeverityError,
			Kind:     KindStructural,
			Message:  fmt.Sprintf("payload is not valid JSON: %v", err),
		}}
	}
	if res.Valid {
		return true, nil
	}
	issues := make([]Issue, 0, len(res.Errors))
	for _, e := range res.Errors {
		issues = append(issues, Issue{
			Path:     e.Path,
			Severity: SeverityError,
			Kind:     KindStructural,
			Message:  e.Message,
		})
	}
	return false, issues
}

// imperativePass strictly decodes the payload and applies the rule engine.
// All violations are collected rather than stopping at the first. The
// returned count covers only rules the declarative schema also expresses,
// for the agreement check.
func imperativePass(raw []byte) (*model.Batch, []Issue, int) {
	var issues []Issue
	covered := 0

	structural := func(path, msg string, schemaCovered bool) {
		issues = append(issues, Issue{
			Path:     path,
			Severity: SeverityError,
			Kind:     KindStructural,
			Message:  msg,
		})
		if schemaCovered {
			covered++
		}
	}

	batch, err := model.DecodeBatch(raw)
	if err != nil {
		structural("root", err.Error(), true)
		return nil, issues, covered
	}

	if len(batch.Terms) == 0 {
		structural("terms", "batch must contain at least one term", true)
	}

	seenIDs := make(map[string]int)
	for i, term := range batch.Terms {
		p := func(field string) string { return fmt.Sprintf("terms.%d.%s", i, field) }

		if !model.IsKebabCase(term.ID) {
			structural(p("id"), fmt.Sprintf("id %q must be kebab-case (%s)", term.ID, model.KebabCasePattern), true)
		}
		if prev, dup := seenIDs[term.ID]; dup {
			// Batch-local uniqueness; not expressible in JSON Schema.
			structural(p("id"), fmt.Sprintf("duplicate id %q already used by terms.%d", term.ID, prev), false)
		} else {
			seenIDs[term.ID] = i
		}

		if n := utf8.RuneCountInString(term.Title); n < 1 || n > titleMaxLen {
			structural(p("title"), fmt.Sprintf("title must be 1-%d characters, got %d", titleMaxLen, n), true)
		}
		if !term.Category.Valid() {
			structural(p("category"), fmt.Sprintf("unknown category %q", term.Category), true)
		}

		if _, ok := term.Sections[model.SectionWhatItIs]; !ok {
			structural(p("sections"), "mandatory section whatItIs is missing", true)
		}
		for name, section := range term.Sections {
			sp := p("sections." + string(name))
			if !name.Valid() {
				structural(sp, fmt.Sprintf("unknown section %q; allowed sections are a fixed set", name), true)
				continue
			}
			if n := utf8.RuneCountInString(section.Content); n < sectionMinLen || n > sectionMaxLen {
				structural(sp+".content",
					fmt.Sprintf("section content must be %d-%d characters, got %d", sectionMinLen, sectionMaxLen, n), true)
			}
			// Plain-text constraint: markup is a hard failure here; the
			// semantic checker repeats this sweep as defense-in-depth.
			if found := detectMarkup(section.Content); len(found) > 0 {
				structural(sp+".content", markupMessage(found), false)
			}
		}

		for j, tag := range term.Tags {
			if !model.IsKebabCase(tag) {
				structural(fmt.Sprintf("terms.%d.tags.%d", i, j),
					fmt.Sprintf("tag %q must be lowercase-hyphenated", tag), true)
			}
		}

		for j, rel := range term.Relationships {
			rp := func(field string) string { return fmt.Sprintf("terms.%d.relationships.%d.%s", i, j, field) }
			if !model.IsKebabCase(rel.TermID) {
				structural(rp("termId"), fmt.Sprintf("termId %q must be kebab-case", rel.TermID), true)
			}
			if !rel.Type.Valid() {
				structural(rp("type"), fmt.Sprintf("unknown relationship type %q", rel.Type), true)
			}
			if rel.Description != "" {
				if n := utf8.RuneCountInString(rel.Description); n < relationshipDescMin || n > relationshipDescMax {
					structural(rp("description"),
						fmt.Sprintf("description must be %d-%d characters when present, got %d",
							relationshipDescMin, relationshipDescMax, n), true)
				}
			}
		}

		if term.CreatedAt.IsZero() {
			structural(p("createdAt"), "createdAt is required", true)
		}
		if term.UpdatedAt.IsZero() {
			structural(p("updatedAt"), "updatedAt is required", true)
		}
	}

	return batch, issues, covered
}
