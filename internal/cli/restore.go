package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE...",
		Short: "Restore files from their edit backups",
		Long: `Put back the copy of each FILE saved by "gosmap edit --in-place --backup"
The backup is kept. The map written next to FILE is left alone.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, nil); err != nil {
				return err
			}
			ctx := commandContext(cmd)
			logger := logging.FromContext(ctx)

			for _, path := range args {
				restored, err := fsutil.RestoreBackup(ctx, path)
				if err != nil {
					return fmt.Errorf("restore %s: %w", path, err)
				}
				if !restored {
					logger.Warn("no backup", logging.FieldPath, path, logging.FieldBackup, fsutil.BackupPath(path))
					continue
				}
				logger.Info("restored", logging.FieldPath, path)
			}
			return nil
		},
	}
}
