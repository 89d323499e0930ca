package gate

import (
	"fmt"

	"github.com/aerolex/termgate/pkg/corpus"
	"github.com/aerolex/termgate/pkg/model"
)

// runCrossReference verifies referential integrity: every relationship
// target must resolve within the union of batch ids and corpus ids, and
// no batch term may reuse an id already published in the corpus. Both
// violations are hard failures.
//
// No cycle detection and no inverse-type mirroring: broader on A→B does
// not require narrower on B→A.
func runCrossReference(batch *model.Batch, c *corpus.Corpus) *PhaseResult {
	result := &PhaseResult{Name: PhaseCrossReference, Status: StatusSuccess, Issues: []Issue{}}

	universe := make(map[string]bool, len(batch.Terms)+c.Len())
	for _, t := range batch.Terms {
		universe[t.ID] = true
	}

	for i, term := range batch.Terms {
		// Corpus-wide id uniqueness is enforced here, not at batch decode
		// time: the corpus context is only available in this phase.
		if c.Has(term.ID) {
			result.Issues = append(result.Issues, Issue{
				Path:     fmt.Sprintf("terms.%d.id", i),
				Severity: SeverityError,
				Kind:     KindCrossReference,
				Code:     CodeDuplicateCorpusID,
				Message:  fmt.Sprintf("id %q already exists in the published corpus", term.ID),
			})
		}

		for j, rel := range term.Relationships {
			if universe[rel.TermID] || c.Has(rel.TermID) {
				continue
			}
			result.Issues = append(result.Issues, Issue{
				Path:     fmt.Sprintf("terms.%d.relationships.%d.termId", i, j),
				Severity: SeverityError,
				Kind:     KindCrossReference,
				Code:     CodeDanglingReference,
				Message: fmt.Sprintf(
					"term %q references %q, which resolves in neither the batch nor the corpus",
					term.ID, rel.TermID),
			})
		}
	}

	return result
}
