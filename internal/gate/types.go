// Package gate implements the batch validation pipeline: the dual-pass
// structural validator, the semantic rule checker, the cross-reference
// resolver, the quiz-readiness auditor, and the report they aggregate
// into.
package gate

import "time"

// Severity distinguishes blocking failures from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IssueKind identifies which check family produced an issue.
type IssueKind string

const (
	KindStructural     IssueKind = "structural"
	KindCrossReference IssueKind = "cross-reference"
	KindSemantic       IssueKind = "semantic"
	KindQuizReadiness  IssueKind = "quiz-readiness"
	KindCorpus         IssueKind = "corpus"
)

// Issue codes for findings that callers may want to distinguish beyond
// kind and severity.
const (
	CodeDualPassDisagreement = "dual-pass-disagreement"
	CodeDanglingReference    = "dangling-reference"
	CodeDuplicateCorpusID    = "duplicate-corpus-id"
	CodeMarkupDetected       = "markup-detected"
	CodeTruncationRisk       = "truncation-risk"
	CodeUnderPopulated       = "under-populated"
	CodeNewCategory          = "new-category"
	CodeDegradedCorpus       = "degraded-corpus"
)

// Issue represents a single validation finding.
type Issue struct {
	Path     string    `json:"path,omitempty"` // locator (e.g., "terms.2.sections.whatItIs.content")
	Severity Severity  `json:"severity"`
	Kind     IssueKind `json:"kind"`
	Code     string    `json:"code,omitempty"`
	Message  string    `json:"message"`
}

// Blocking reports whether the issue rejects the batch.
func (i Issue) Blocking() bool {
	return i.Severity == SeverityError
}

// PhaseStatus describes how a pipeline phase ended.
type PhaseStatus string

const (
	StatusSuccess PhaseStatus = "success"
	StatusSkipped PhaseStatus = "skipped"
)

// PhaseResult carries the outcome of one pipeline phase.
type PhaseResult struct {
	Name       string      `json:"name"`
	Status     PhaseStatus `json:"status"`
	SkipReason string      `json:"skip_reason,omitempty"`
	Issues     []Issue     `json:"issues"`
}

// Blocking reports whether any issue in the phase rejects the batch.
func (p *PhaseResult) Blocking() bool {
	for _, i := range p.Issues {
		if i.Blocking() {
			return true
		}
	}
	return false
}

// Phase names in pipeline order.
const (
	PhaseStructural     = "Structural Validation"
	PhaseSemantic       = "Semantic Rules"
	PhaseCrossReference = "Cross-Reference Resolution"
	PhaseQuizReadiness  = "Quiz Readiness"
)

// ReportMetadata describes the validation run.
type ReportMetadata struct {
	Tool          string        `json:"tool"`
	Version       string        `json:"version"`
	Target        string        `json:"target"`
	GeneratedAt   time.Time     `json:"generated_at"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// ReportSummary provides the verdict and headline counts.
type ReportSummary struct {
	Accepted       bool     `json:"accepted"`
	BlockingIssues int      `json:"blocking_issues"`
	Warnings       int      `json:"warnings"`
	TermCount      int      `json:"term_count"`
	Categories     []string `json:"categories"`
}

// Report is the aggregated result of validating one batch.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Summary  ReportSummary  `json:"summary"`
	Phases   []PhaseResult  `json:"phases"`
}

// Issues returns all issues across phases in pipeline order.
func (r *Report) Issues() []Issue {
	var all []Issue
	for _, p := range r.Phases {
		all = append(all, p.Issues...)
	}
	return all
}

// summarize recomputes the summary counts from the phase results.
func (r *Report) summarize() {
	r.Summary.BlockingIssues = 0
	r.Summary.Warnings = 0
	for _, issue := range r.Issues() {
		if issue.Blocking() {
			r.Summary.BlockingIssues++
		} else {
			r.Summary.Warnings++
		}
	}
	r.Summary.Accepted = r.Summary.BlockingIssues == 0
}
