package gate

import (
	"fmt"
	"sort"

	"github.com/aerolex/termgate/pkg/corpus"
	"github.com/aerolex/termgate/pkg/model"
)

// runQuizReadiness flags categories that cannot yet supply enough terms
// for quiz distractor generation. Advisory only: category population is
// expected to converge over multiple batches, not within one.
func runQuizReadiness(batch *model.Batch, c *corpus.Corpus, minTerms int) *PhaseResult {
	result := &PhaseResult{Name: PhaseQuizReadiness, Status: StatusSuccess, Issues: []Issue{}}

	batchCounts := make(map[model.Category]int)
	for _, t := range batch.Terms {
		batchCounts[t.Category]++
	}
	corpusCounts := c.CategoryCounts()

	combined := make(map[model.Category]int, len(batchCounts)+len(corpusCounts))
	for cat, n := range corpusCounts {
		combined[cat] += n
	}
	for cat, n := range batchCounts {
		combined[cat] += n
	}

	// Stable output order for reproducible reports.
	cats := make([]model.Category, 0, len(combined))
	for cat := range combined {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	for _, cat := range cats {
		total := combined[cat]
		if total >= minTerms {
			continue
		}
		needed := minTerms - total

		// A category the corpus has never seen has no prior terms to lean
		// on, so an underpopulated introduction is called out separately
		// and more urgently than ordinary underpopulation.
		if batchCounts[cat] > 0 && corpusCounts[cat] == 0 {
			result.Issues = append(result.Issues, Issue{
				Path:     "category." + string(cat),
				Severity: SeverityWarning,
				Kind:     KindQuizReadiness,
				Code:     CodeNewCategory,
				Message: fmt.Sprintf(
					"batch introduces new category %q with only %d term(s); %d more needed before quiz distractors can be generated",
					cat, batchCounts[cat], needed),
			})
			continue
		}

		result.Issues = append(result.Issues, Issue{
			Path:     "category." + string(cat),
			Severity: SeverityWarning,
			Kind:     KindQuizReadiness,
			Code:     CodeUnderPopulated,
			Message: fmt.Sprintf(
				"category %q has %d term(s) across corpus and batch; %d more needed for quiz readiness",
				cat, total, needed),
		})
	}

	return result
}
