package gate

import (
	"fmt"
	"unicode/utf8"

	"github.com/aerolex/termgate/pkg/model"
)

// runSemantic applies content-quality rules to a structurally valid
// batch. Everything here is advisory; the phase never rejects a batch.
//
// The markup sweep duplicates a check the structural validator already
// applies as a hard failure. That redundancy is deliberate: if the two
// ever diverge, markup that slipped past acceptance still gets flagged
// here instead of reaching downstream consumers silently.
func runSemantic(batch *model.Batch, truncationLimit int) *PhaseResult {
	result := &PhaseResult{Name: PhaseSemantic, Status: StatusSuccess, Issues: []Issue{}}

	for i, term := range batch.Terms {
		for name, section := range term.Sections {
			path := fmt.Sprintf("terms.%d.sections.%s.content", i, name)

			if found := detectMarkup(section.Content); len(found) > 0 {
				result.Issues = append(result.Issues, Issue{
					Path:     path,
					Severity: SeverityWarning,
					Kind:     KindSemantic,
					Code:     CodeMarkupDetected,
					Message:  markupMessage(found),
				})
			}

			if n := utf8.RuneCountInString(section.Content); n > truncationLimit {
				result.Issues = append(result.Issues, Issue{
					Path:     path,
					Severity: SeverityWarning,
					Kind:     KindSemantic,
					Code:     CodeTruncationRisk,
					Message: fmt.Sprintf(
						"content is %d characters; downstream consumers truncate at %d", n, truncationLimit),
				})
			}
		}
	}

	return result
}
