package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/aerolex/termgate/pkg/config"
	"github.com/aerolex/termgate/pkg/logger"
	"github.com/aerolex/termgate/pkg/manifest"
	"github.com/aerolex/termgate/pkg/model"
	"github.com/aerolex/termgate/pkg/safeio"
	"github.com/spf13/cobra"
)

func newUpdateManifestCommand() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "update-manifest <batch-file>",
		Short: "Upsert a validated batch into the manifest",
		Long: `Update-manifest records a batch in the persistent manifest: an entry is
built from the batch artifact (id from the filename, term count, category set)
and upserted by id, then the manifest is rewritten sorted descending by
createdAt.

Expected to be invoked only after validate succeeds; it does not re-run the
validation pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if manifestPath == "" {
				manifestPath = cfg.Manifest.Path
			}

			batchPath, err := safeio.CleanUserPath(args[0])
			if err != nil {
				return fmt.Errorf("batch path: %w", err)
			}
			raw, err := os.ReadFile(batchPath) // #nosec G304 -- batchPath sanitized with safeio.CleanUserPath
			if err != nil {
				return fmt.Errorf("read batch file: %w", err)
			}
			batch, err := model.DecodeBatch(raw)
			if err != nil {
				return err
			}

			m, err := manifest.Merge(batch, batchPath, manifestPath, cfg.Manifest.TimestampSource, time.Now())
			if err != nil {
				return err
			}

			logger.Info("manifest updated",
				logger.String("manifest", manifestPath),
				logger.String("batch", manifest.EntryID(batchPath)),
				logger.Int("entries", len(m.Batches)))
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest file path (default: from config)")

	return cmd
}
