package cmd

import (
	"fmt"
	"os"

	"github.com/aerolex/termgate/internal/gate"
	"github.com/aerolex/termgate/pkg/config"
	"github.com/aerolex/termgate/pkg/logger"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var (
		validateFormat string
		validateOutput string
	)

	cmd := &cobra.Command{
		Use:   "validate <batch-file>",
		Short: "Validate a term batch against the corpus contract",
		Long: `Validate runs the full pipeline over a batch file: structural shape
(dual-pass), semantic content rules, cross-reference resolution against the
published corpus, and quiz-readiness auditing.

Exits 0 when the batch has no hard errors (warnings permitted) and 1 on any
hard error or unreadable input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFmt, err := gate.ParseFormat(validateFormat)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			engine := gate.NewEngine(cfg)
			report, err := engine.ValidateFile(args[0])
			if err != nil {
				return err
			}

			formatter := gate.NewFormatter(outFmt)
			if validateOutput != "" {
				f, err := os.Create(validateOutput) // #nosec G304 -- user-requested output path
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer func() {
					if err := f.Close(); err != nil {
						logger.Warn("Failed to close output file", logger.Err(err))
					}
				}()
				if err := formatter.WriteReport(f, report); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				logger.Info("Validation report written", logger.String("output", validateOutput))
			} else {
				if err := formatter.WriteReport(cmd.OutOrStdout(), report); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}

			if !report.Summary.Accepted {
				return fmt.Errorf("batch rejected: %d blocking issue(s)", report.Summary.BlockingIssues)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&validateFormat, "format", "concise", "Output format (markdown, json, concise)")
	cmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
