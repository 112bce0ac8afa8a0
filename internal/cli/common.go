package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gosmap/internal/configloader"
	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/internal/ui/pretty"
	"github.com/yaklabco/gosmap/pkg/config"
	"github.com/yaklabco/gosmap/pkg/fsutil"
	"github.com/yaklabco/gosmap/pkg/mapcache"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return nil
	}
}

// loadConfig resolves the configuration for a command and attaches a
// logger at the configured level to the command's context. cliCfg holds the
// settings given as flags and may be nil.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	level := result.Config.LogLevel
	if debug, _ := cmd.Flags().GetBool(flagDebug); debug {
		level = "debug"
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), level)
	cmd.SetContext(logging.WithLogger(commandContext(cmd), logger))

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	return result.Config, nil
}

// openCache returns the parsed map cache, or nil when caching is off.
func openCache(cmd *cobra.Command, cfg *config.Config) (*mapcache.Cache, error) {
	if noCache, _ := cmd.Flags().GetBool(flagNoCache); noCache || !cfg.CacheEnabled() {
		return nil, nil
	}
	cache, err := mapcache.Open(cfg.Cache.Dir)
	if err != nil {
		return nil, err
	}
	logging.FromContext(commandContext(cmd)).Debug("using map cache", logging.FieldCache, cache.Dir())
	return cache, nil
}

// loadMaps parses the maps at paths concurrently, keeping their order.
func loadMaps(ctx context.Context, cache *mapcache.Cache, paths []string) ([]*sourcemap.Table, error) {
	tables := make([]*sourcemap.Table, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		group.Go(func() error {
			table, err := cache.Load(ctx, path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			tables[i] = table
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// encodeMap returns the JSON form of table with a trailing newline.
func encodeMap(table *sourcemap.Table, indent bool) ([]byte, error) {
	data, err := table.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode map: %w", err)
	}
	if indent {
		return sourcemap.Indent(data), nil
	}
	return append(data, '\n'), nil
}

// writeMap writes table to path, or to out when path is empty.
func writeMap(ctx context.Context, out io.Writer, path string, table *sourcemap.Table, indent bool) error {
	data, err := encodeMap(table, indent)
	if err != nil {
		return err
	}
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	return fsutil.WriteAtomic(ctx, path, data, fsutil.DefaultFileMode)
}

// newFormatter builds a table formatter for out honoring --color.
func newFormatter(cmd *cobra.Command, out io.Writer) (*pretty.TableFormatter, *pretty.Styles) {
	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = "auto"
	}
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	styles := pretty.NewStyles(colorEnabled)
	return pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(out)), styles
}

// parsePosition parses a displayed "LINE:COL" position, where lines are
// 1-based and columns 0-based, into zero-based coordinates.
func parsePosition(text string) (int, int, error) {
	lineText, columnText, ok := strings.Cut(text, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: position %q is not LINE:COL", ErrInvalidUsage, text)
	}
	line, err := parseLine(lineText)
	if err != nil {
		return 0, 0, err
	}
	column, err := parseColumn(columnText)
	if err != nil {
		return 0, 0, err
	}
	return line, column, nil
}

func parseLine(text string) (int, error) {
	line, err := strconv.Atoi(text)
	if err != nil || line < 1 {
		return 0, fmt.Errorf("%w: line %q must be a positive integer", ErrInvalidUsage, text)
	}
	return line - 1, nil
}

func parseColumn(text string) (int, error) {
	column, err := strconv.Atoi(text)
	if err != nil || column < 0 {
		return 0, fmt.Errorf("%w: column %q must be a non-negative integer", ErrInvalidUsage, text)
	}
	return column, nil
}
