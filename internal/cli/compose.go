package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/pkg/config"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

type composeFlags struct {
	output string
	pretty bool
	file   string
}

func newComposeCommand() *cobra.Command {
	flags := &composeFlags{}

	cmd := &cobra.Command{
		Use:   "compose MAP UPSTREAM...",
		Short: "Compose the maps of successive transformation passes",
		Long: `Compose MAP, the map of the last pass, with the maps of earlier passes so
that the result points directly at the original sources.

Each UPSTREAM replaces the source of MAP it was generated for. That source
is the upstream's "file" field; when the field is missing, the upstream's
path without its .map suffix is matched against MAP's sources, first
exactly and then by base name. An upstream that matches no source is
skipped with a warning.

Examples:
  gosmap compose out.js.map out.ts.js.map -o app.js.map
  gosmap compose min.js.map bundle.js.map --pretty`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the composed map here instead of stdout")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent the composed map")
	cmd.Flags().StringVar(&flags.file, "file", "", "set the \"file\" field of the composed map")

	return cmd
}

func runCompose(cmd *cobra.Command, args []string, flags *composeFlags) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("pretty") {
		cliCfg.Pretty = config.Bool(flags.pretty)
	}
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cache, err := openCache(cmd, cfg)
	if err != nil {
		return err
	}

	tables, err := loadMaps(ctx, cache, args)
	if err != nil {
		return err
	}

	table := tables[0]
	for i, upstream := range tables[1:] {
		path := args[i+1]
		source, ok := upstreamSource(table, upstream, path)
		if !ok {
			logger.Warn("upstream map matches no source",
				logging.FieldUpstream, path,
				logging.FieldSources, table.Sources(),
			)
			continue
		}

		upstream.File = source
		table.ApplySourceMap(upstream)
		logger.Debug("applied upstream map",
			logging.FieldUpstream, path,
			logging.FieldFile, source,
			logging.FieldSources, len(table.Sources()),
		)
	}

	if flags.file != "" {
		table.File = flags.file
	}

	if err := writeMap(ctx, cmd.OutOrStdout(), flags.output, table, cfg.PrettyEnabled()); err != nil {
		return fmt.Errorf("write composed map: %w", err)
	}
	if flags.output != "" {
		logger.Info("wrote composed map", logging.FieldOutput, flags.output)
	}
	return nil
}

// upstreamSource picks the source of table that upstream was generated
// for.
func upstreamSource(table, upstream *sourcemap.Table, path string) (string, bool) {
	candidates := []string{upstream.File, strings.TrimSuffix(filepath.Base(path), ".map")}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, ok := table.SourceIndex(candidate); ok {
			return candidate, true
		}
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		base := filepath.Base(candidate)
		for _, source := range table.Sources() {
			if filepath.Base(source) == base {
				return source, true
			}
		}
	}
	return "", false
}
