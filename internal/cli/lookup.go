package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/internal/ui/pretty"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

type lookupFlags struct {
	adjustColumn bool
	adjustLine   bool
	reverse      string
}

func newLookupCommand() *cobra.Command {
	flags := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup MAP [LINE:COL]",
		Short: "Resolve positions through a source map",
		Long: `Resolve a generated position to its original location, or with --reverse
list the generated positions of an original location.

Lines are 1-based and columns 0-based. A lookup that finds nothing exits
with status 1.

Examples:
  gosmap lookup app.js.map 12:4                   Original location of 12:4
  gosmap lookup app.js.map 12:40 --adjust-column  Extrapolate the column
  gosmap lookup app.js.map --reverse src/a.ts:3   Generated positions of line 3
  gosmap lookup app.js.map --reverse src/a.ts:3:8 Nearest column at or before 8`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.adjustColumn, "adjust-column", false,
		"offset the original column by the distance from the matched mapping")
	cmd.Flags().BoolVar(&flags.adjustLine, "adjust-line", false,
		"fall back to the nearest earlier mapped line")
	cmd.Flags().StringVar(&flags.reverse, "reverse", "", "original location SOURCE:LINE[:COL] to resolve")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string, flags *lookupFlags) error {
	switch {
	case flags.reverse == "" && len(args) != 2:
		return fmt.Errorf("%w: expected MAP LINE:COL", ErrInvalidUsage)
	case flags.reverse != "" && len(args) != 1:
		return fmt.Errorf("%w: --reverse takes no LINE:COL argument", ErrInvalidUsage)
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd, cfg)
	if err != nil {
		return err
	}
	table, err := cache.Load(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	formatter, _ := newFormatter(cmd, out)

	if flags.reverse != "" {
		return lookupGenerated(cmd, table, formatter, flags.reverse)
	}

	line, column, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	var adjust sourcemap.Adjust
	if flags.adjustColumn {
		adjust |= sourcemap.AdjustColumn
	}
	if flags.adjustLine {
		adjust |= sourcemap.AdjustLine
	}

	loc, ok := table.GetSource(line, column, adjust)
	if !ok {
		fmt.Fprintln(out, formatter.FormatNotFound(pretty.Position(line, column)))
		return ErrNoMapping
	}
	fmt.Fprintln(out, formatter.FormatLocation(loc))
	return nil
}

func lookupGenerated(cmd *cobra.Command, table *sourcemap.Table, formatter *pretty.TableFormatter, spec string) error {
	out := cmd.OutOrStdout()

	source, line, column, hasColumn, err := parseSourcePosition(spec)
	if err != nil {
		return err
	}
	if _, ok := table.SourceIndex(source); !ok {
		logging.FromContext(commandContext(cmd)).Debug("source not in map", logging.FieldPath, source, logging.FieldSources, table.Sources())
	}

	var positions []sourcemap.Position
	if hasColumn {
		positions = table.GetAllGeneratedColumn(sourcemap.ByValue(source), line, column)
	} else {
		positions = table.GetAllGenerated(sourcemap.ByValue(source), line)
	}

	if len(positions) == 0 {
		fmt.Fprintln(out, formatter.FormatNotFound(spec))
		return ErrNoMapping
	}
	for _, pos := range positions {
		fmt.Fprintln(out, pretty.Position(pos.Line, pos.Column))
	}
	return nil
}

// parseSourcePosition splits SOURCE:LINE[:COL]. The source may itself
// contain colons, so the numeric fields are taken from the right.
func parseSourcePosition(spec string) (string, int, int, bool, error) {
	rest, last, ok := cutLast(spec)
	if !ok || rest == "" {
		return "", 0, 0, false, fmt.Errorf("%w: location %q is not SOURCE:LINE[:COL]", ErrInvalidUsage, spec)
	}

	if source, lineText, ok := cutLast(rest); ok && source != "" && isNumber(lineText) {
		line, err := parseLine(lineText)
		if err != nil {
			return "", 0, 0, false, err
		}
		column, err := parseColumn(last)
		if err != nil {
			return "", 0, 0, false, err
		}
		return source, line, column, true, nil
	}

	line, err := parseLine(last)
	if err != nil {
		return "", 0, 0, false, err
	}
	return rest, line, 0, false, nil
}

func cutLast(text string) (string, string, bool) {
	idx := strings.LastIndex(text, ":")
	if idx < 0 {
		return "", "", false
	}
	return text[:idx], text[idx+1:], true
}

func isNumber(text string) bool {
	_, err := strconv.Atoi(text)
	return err == nil
}
