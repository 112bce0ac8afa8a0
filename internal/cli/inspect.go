package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/pkg/config"
)

type inspectFlags struct {
	json    bool
	summary bool
	pretty  bool
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect MAP...",
		Short: "Print the contents of source maps",
		Long: `Parse one or more source maps and print a summary line and a table of
their mappings. Maps are parsed concurrently and printed in argument order.

Generated and original positions are shown as LINE:COL with 1-based lines
and 0-based columns.

Examples:
  gosmap inspect app.js.map             Summary and mapping table
  gosmap inspect --summary dist/*.map   One line per map
  gosmap inspect --json --pretty a.map  Re-encoded map JSON`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the re-encoded map JSON")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print only the summary line")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent JSON output")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, flags *inspectFlags) error {
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

	out := cmd.OutOrStdout()
	formatter, _ := newFormatter(cmd, out)

	for i, table := range tables {
		logger.Debug("inspecting map",
			logging.FieldPath, args[i],
			logging.FieldSources, len(table.Sources()),
			logging.FieldNames, len(table.Names()),
		)

		if flags.json {
			data, err := encodeMap(table, cfg.PrettyEnabled())
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			continue
		}

		if i > 0 && !flags.summary {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, formatter.FormatSummary(args[i], table))
		if flags.summary {
			continue
		}
		if rendered := formatter.FormatTable(table); rendered != "" {
			fmt.Fprintln(out)
			fmt.Fprint(out, rendered)
		}
	}

	return nil
}
