package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/pkg/config"
	"github.com/yaklabco/gosmap/pkg/mapcache"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parsed map cache",
		Long: `The cache stores parsed source maps keyed by the hash of their content, so
repeated runs over large maps skip JSON and VLQ decoding. It is enabled with
cache.enabled in the configuration or GOSMAP_CACHE_ENABLED=true.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := cacheFor(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached map",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := cacheFor(cmd)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			logging.FromContext(commandContext(cmd)).Info("cleared map cache", logging.FieldCache, cache.Dir())
			return nil
		},
	})

	return cmd
}

// cacheFor opens the configured cache directory whether or not caching is
// enabled.
func cacheFor(cmd *cobra.Command) (*mapcache.Cache, error) {
	cfg, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return nil, err
	}
	return mapcache.Open(cfg.Cache.Dir)
}
