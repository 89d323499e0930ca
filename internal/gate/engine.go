package gate

import (
	"fmt"
	"os"
	"time"

	"github.com/aerolex/termgate/pkg/buildinfo"
	"github.com/aerolex/termgate/pkg/config"
	"github.com/aerolex/termgate/pkg/corpus"
	"github.com/aerolex/termgate/pkg/logger"
	"github.com/aerolex/termgate/pkg/model"
	"github.com/aerolex/termgate/pkg/safeio"
)

// Engine runs the validation pipeline for one batch per invocation.
// Validation is a pure function of (batch, corpus); the engine owns no
// mutable state.
type Engine struct {
	cfg *config.Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// ValidateFile reads and validates the batch artifact at path. A missing
// or unreadable batch file is an operational error, not a validation
// finding.
func (e *Engine) ValidateFile(path string) (*Report, error) {
	cleanPath, err := safeio.CleanUserPath(path)
	if err != nil {
		return nil, fmt.Errorf("batch path: %w", err)
	}
	raw, err := os.ReadFile(cleanPath) // #nosec G304 -- cleanPath sanitized with safeio.CleanUserPath
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return e.ValidateBytes(raw, cleanPath)
}

// ValidateBytes validates a raw batch payload. Phases run in pipeline
// order; a structural failure skips every later phase.
func (e *Engine) ValidateBytes(raw []byte, target string) (*Report, error) {
	start := time.Now()
	report := &Report{
		Metadata: ReportMetadata{
			Tool:        "termgate",
			Version:     buildinfo.BinaryVersion,
			Target:      target,
			GeneratedAt: start,
		},
	}

	structural, batch := runStructural(raw)
	report.Phases = append(report.Phases, *structural)

	if structural.Blocking() || batch == nil {
		logger.Warn("structural validation failed, skipping later phases",
			logger.String("target", target), logger.Int("issues", len(structural.Issues)))
		skip := "structural validation failed"
		for _, name := range []string{PhaseSemantic, PhaseCrossReference, PhaseQuizReadiness} {
			report.Phases = append(report.Phases, PhaseResult{
				Name: name, Status: StatusSkipped, SkipReason: skip, Issues: []Issue{},
			})
		}
		report.finish(start, nil)
		return report, nil
	}

	report.Phases = append(report.Phases, *runSemantic(batch, e.cfg.Advisory.TruncationLimit))

	c, err := corpus.Load(e.cfg.Corpus.Dir, e.cfg.Corpus.Patterns)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	xref := runCrossReference(batch, c)
	if c.Degraded {
		// The batch is still assessable against an empty or partial
		// corpus, but the reader needs to know the context was incomplete.
		xref.Issues = append([]Issue{{
			Path:     "corpus",
			Severity: SeverityWarning,
			Kind:     KindCorpus,
			Code:     CodeDegradedCorpus,
			Message:  "corpus unavailable or partially loaded; cross-batch checks ran in degraded mode",
		}}, xref.Issues...)
	}
	report.Phases = append(report.Phases, *xref)

	report.Phases = append(report.Phases, *runQuizReadiness(batch, c, e.cfg.Quiz.MinTerms))

	report.finish(start, batch)

	logger.Info("batch validated",
		logger.String("target", target),
		logger.Bool("accepted", report.Summary.Accepted),
		logger.Int("blocking", report.Summary.BlockingIssues),
		logger.Int("warnings", report.Summary.Warnings))

	return report, nil
}

// finish stamps timing and summary fields once all phases have run.
func (r *Report) finish(start time.Time, batch *model.Batch) {
	r.Metadata.ExecutionTime = time.Since(start)
	if batch != nil {
		r.Summary.TermCount = len(batch.Terms)
		names := make([]string, 0, len(batch.CategorySet()))
		for _, c := range batch.CategorySet() {
			names = append(names, string(c))
		}
		r.Summary.Categories = names
	}
	r.summarize()
}
