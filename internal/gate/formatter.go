package gate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aerolex/termgate/internal/assets"
	"github.com/aymerick/raymond"
)

// OutputFormat selects the report rendering.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	// Concise is a short, colorized summary ideal for CI logs
	FormatConcise OutputFormat = "concise"
)

// ParseFormat maps a format flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "concise":
		return FormatConcise, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Formatter renders validation reports.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a formatter for the given output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatReport renders the report as a string.
func (f *Formatter) FormatReport(report *Report) (string, error) {
	switch f.format {
	case FormatMarkdown:
		return f.formatMarkdown(report)
	case FormatJSON:
		return f.formatJSON(report)
	case FormatConcise:
		return f.formatConcise(report), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", f.format)
	}
}

// WriteReport renders the report to w.
func (f *Formatter) WriteReport(w io.Writer, report *Report) error {
	out, err := f.FormatReport(report)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

func (f *Formatter) formatJSON(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(data), nil
}

// formatMarkdown renders the embedded Handlebars template.
func (f *Formatter) formatMarkdown(report *Report) (string, error) {
	tpl, ok := assets.GetTemplate("report.md.hbs")
	if !ok {
		return "", fmt.Errorf("report template not embedded")
	}

	phases := make([]map[string]interface{}, 0, len(report.Phases))
	for _, p := range report.Phases {
		issues := make([]map[string]interface{}, 0, len(p.Issues))
		for _, i := range p.Issues {
			issues = append(issues, map[string]interface{}{
				"severity": string(i.Severity),
				"path":     i.Path,
				"message":  i.Message,
			})
		}
		phases = append(phases, map[string]interface{}{
			"name":       p.Name,
			"skipped":    p.Status == StatusSkipped,
			"skipReason": p.SkipReason,
			"issues":     issues,
		})
	}

	data := map[string]interface{}{
		"metadata": map[string]interface{}{
			"tool":          report.Metadata.Tool,
			"version":       report.Metadata.Version,
			"target":        report.Metadata.Target,
			"generatedAt":   report.Metadata.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
			"executionTime": report.Metadata.ExecutionTime.String(),
		},
		"summary": map[string]interface{}{
			"accepted":       report.Summary.Accepted,
			"termCount":      report.Summary.TermCount,
			"categories":     strings.Join(report.Summary.Categories, ", "),
			"blockingIssues": report.Summary.BlockingIssues,
			"warnings":       report.Summary.Warnings,
		},
		"phases": phases,
	}

	out, err := raymond.Render(string(tpl), data)
	if err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return out, nil
}

// formatConcise prints a short, colorized summary suitable for CI logs
func (f *Formatter) formatConcise(report *Report) string {
	color := func(code string, s string) string {
		if os.Getenv("NO_COLOR") != "" {
			return s
		}
		return "\x1b[" + code + "m" + s + "\x1b[0m"
	}
	bold := func(s string) string { return color("1", s) }
	green := func(s string) string { return color("32", s) }
	yellow := func(s string) string { return color("33", s) }
	red := func(s string) string { return color("31", s) }

	var sb strings.Builder

	verdict := green("ACCEPTED")
	if !report.Summary.Accepted {
		verdict = red("REJECTED")
	}
	fmt.Fprintf(&sb, "%s %s | terms: %d | blocking: %d | warnings: %d | time: %s\n",
		bold("Batch"), verdict, report.Summary.TermCount,
		report.Summary.BlockingIssues, report.Summary.Warnings,
		report.Metadata.ExecutionTime)

	for _, p := range report.Phases {
		var status string
		switch {
		case p.Status == StatusSkipped:
			status = yellow("skipped")
		case p.Blocking():
			status = red(fmt.Sprintf("%d blocking issue(s)", len(p.Issues)))
		case len(p.Issues) > 0:
			status = yellow(fmt.Sprintf("%d warning(s)", len(p.Issues)))
		default:
			status = green("ok")
		}
		fmt.Fprintf(&sb, " - %s: %s\n", p.Name, status)
	}

	return sb.String()
}
