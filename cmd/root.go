package cmd

import (
	"os"

	"github.com/aerolex/termgate/pkg/buildinfo"
	"github.com/aerolex/termgate/pkg/exitcode"
	"github.com/aerolex/termgate/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termgate",
		Short: "Validation and manifest gate for glossary term batches",
		Long: `Termgate validates submitted glossary term batches against the corpus
contract before merge: structural shape, content-quality rules, cross-reference
integrity, and quiz-readiness impact. On acceptance it maintains the batch
manifest.

Examples:
   termgate validate batches/batch-2025-01-15-001.json
   termgate update-manifest batches/batch-2025-01-15-001.json
   termgate version`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("termgate {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// Called from init() for production; tests can call it on isolated roots.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newUpdateManifestCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "termgate",
	})
}
