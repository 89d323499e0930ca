package gate

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aerolex/termgate/pkg/model"
)

// validTerm returns a well-formed term for fixtures. Callers mutate the
// result to introduce specific violations.
func validTerm(id string, category model.Category) model.Term {
	return model.Term{
		ID:       id,
		Title:    strings.ToUpper(strings.ReplaceAll(id, "-", " ")),
		Category: category,
		Sections: map[model.SectionName]model.Section{
			model.SectionWhatItIs: {Content: "A piece of equipment or procedure used in flight operations."},
		},
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// encodeBatch renders a batch to the JSON wire shape the validator consumes.
func encodeBatch(t *testing.T, b *model.Batch) []byte {
	t.Helper()
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("encode batch fixture: %v", err)
	}
	return data
}

// issuesWithCode filters issues by code.
func issuesWithCode(issues []Issue, code string) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}
