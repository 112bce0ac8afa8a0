package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/diffview"
	"github.com/yaklabco/gosmap/internal/logging"
	"github.com/yaklabco/gosmap/pkg/config"
	"github.com/yaklabco/gosmap/pkg/edit"
	"github.com/yaklabco/gosmap/pkg/fsutil"
	"github.com/yaklabco/gosmap/pkg/langdetect"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
	"github.com/yaklabco/gosmap/pkg/writer"
)

type editFlags struct {
	inputMap     string
	sourceName   string
	splices      []string
	replaces     []string
	regex        bool
	global       bool
	output       string
	inPlace      bool
	backup       bool
	diff         bool
	lineOnly     bool
	pretty       bool
	commentStyle string
}

func newEditCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a file and generate a source map of the result",
		Long: `Apply splices and replacements to FILE and write the result together with
a source map that points back at FILE, or at FILE's own sources when FILE
has an input map.

Offsets given to --splice count UTF-16 code units of FILE. All edits refer
to the unedited text and must not overlap.

When the output goes to a file, the map is written next to it as OUT.map
and a sourceMappingURL comment is added or updated. The comment style is
taken from the configuration, or detected from the output's language.
Without -o or --in-place the edited text goes to stdout and no map is
written.

Examples:
  gosmap edit app.js --replace 'DEBUG=false' -o dist/app.js
  gosmap edit app.js --regex --global --replace 'console\.log\((.*?)\);=' -o out.js
  gosmap edit style.css --splice 0:0:'@charset "utf-8";' --in-place --backup
  gosmap edit bundle.js --input-map bundle.js.map --replace foo=bar --diff`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.inputMap, "input-map", "",
		"source map of FILE (default: its sourceMappingURL, if any)")
	cmd.Flags().StringVar(&flags.sourceName, "source-name", "", "path recorded for FILE in the map (default: FILE)")
	cmd.Flags().StringArrayVar(&flags.splices, "splice", nil, "replace N units at offset I with TEXT, as I:N:TEXT")
	cmd.Flags().StringArrayVar(&flags.replaces, "replace", nil, "replace SEARCH with REPL, as SEARCH=REPL split at the first =")
	cmd.Flags().BoolVar(&flags.regex, "regex", false, "treat SEARCH as a regular expression; REPL may use $& and $1-$9")
	cmd.Flags().BoolVar(&flags.global, "global", false, "replace every occurrence instead of the first")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file; its map is written to OUT.map")
	cmd.Flags().BoolVar(&flags.inPlace, "in-place", false, "overwrite FILE")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a copy of FILE before overwriting it")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show a diff of the edit instead of writing it")
	cmd.Flags().BoolVar(&flags.lineOnly, "line-only", false, "emit one mapping per line")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent the written map")
	cmd.Flags().StringVar(&flags.commentStyle, "comment-style", "",
		"sourceMappingURL comment style: auto, line, block")

	return cmd
}

func runEdit(cmd *cobra.Command, path string, flags *editFlags) error {
	if flags.inPlace && flags.output != "" {
		return fmt.Errorf("%w: --in-place and --output are exclusive", ErrInvalidUsage)
	}
	if flags.backup && !flags.inPlace {
		return fmt.Errorf("%w: --backup requires --in-place", ErrInvalidUsage)
	}

	cfg, err := loadConfig(cmd, editConfig(cmd, flags))
	if err != nil {
		return err
	}
	ctx := logging.WithFields(commandContext(cmd), logging.FieldFile, path)
	cmd.SetContext(ctx)
	logger := logging.FromContext(ctx)

	data, stamp, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	content := string(data)

	inputMap, err := loadInputMap(cmd, cfg, path, content, flags.inputMap)
	if err != nil {
		return err
	}

	sourceName := flags.sourceName
	if sourceName == "" {
		sourceName = filepath.ToSlash(path)
	}
	doc := edit.New(content, edit.WithPath(sourceName), edit.WithSourceMap(inputMap))

	if err := queueEdits(logger, doc, flags); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("edits: %w", err)
	}

	outPath := flags.output
	if flags.inPlace {
		outPath = path
	}

	opts := writer.Options{
		IndentUnit: cfg.IndentUnit,
		LineOnly:   cfg.LineOnlyEnabled(),
	}
	if outPath != "" {
		opts.File = filepath.Base(outPath)
	}

	generated, err := doc.Generate(opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	logger.Debug("generated output",
		logging.FieldEdits, len(doc.Replacements()),
		logging.FieldSources, len(generated.Table().Sources()),
	)

	table := generated.Table()
	if cfg.SourcesContentEnabled() {
		if _, ok := table.SourceIndex(sourceName); ok {
			table.SetSourceContent(sourceName, content)
		}
	}

	text := generated.String()
	mapPath := ""
	if outPath != "" {
		mapPath = outPath + ".map"
		style := commentStyle(cfg, outPath, text)
		logger.Debug("writing sourceMappingURL", logging.FieldStyle, style)
		text = sourcemap.SetSourceMappingURL(text, filepath.Base(mapPath), style)
	}

	if flags.diff {
		diff, err := diffview.Unified(path, content, text, 0)
		if err != nil {
			return err
		}
		if !diff.HasChanges() {
			logger.Info("no changes", logging.FieldPath, path)
			return nil
		}
		_, styles := newFormatter(cmd, cmd.OutOrStdout())
		return diffview.Render(cmd.OutOrStdout(), diff, styles)
	}

	if outPath == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if flags.inPlace {
		if err := stamp.Verify(ctx); err != nil {
			return err
		}
		if flags.backup {
			created, err := fsutil.CreateBackup(ctx, path)
			if err != nil {
				return err
			}
			logger.Debug("backup", logging.FieldBackup, fsutil.BackupPath(path), logging.FieldWritten, created)
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outPath, []byte(text), stamp.Mode.Perm())
	if err != nil {
		return err
	}
	if err := writeMap(ctx, nil, mapPath, table, cfg.PrettyEnabled()); err != nil {
		return fmt.Errorf("write map: %w", err)
	}

	logger.Info("wrote output",
		logging.FieldOutput, outPath,
		logging.FieldWritten, written,
		logging.FieldMappings, mapPath,
	)
	return nil
}

// editConfig collects the configuration settings given as edit flags.
func editConfig(cmd *cobra.Command, flags *editFlags) *config.Config {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("line-only") {
		cliCfg.LineOnly = config.Bool(flags.lineOnly)
	}
	if cmd.Flags().Changed("pretty") {
		cliCfg.Pretty = config.Bool(flags.pretty)
	}
	if flags.commentStyle != "" {
		cliCfg.CommentStyle = config.CommentStyle(flags.commentStyle)
	}
	return cliCfg
}

// loadInputMap loads the map of the file being edited. Without an explicit
// path the file's own sourceMappingURL is followed when it names a local
// file.
func loadInputMap(cmd *cobra.Command, cfg *config.Config, path, content, explicit string) (*sourcemap.Table, error) {
	logger := logging.FromContext(commandContext(cmd))

	mapPath := explicit
	if mapPath == "" {
		url, ok := sourcemap.SourceMappingURL(content)
		if !ok || url == "" || strings.Contains(url, ":") {
			return nil, nil
		}
		mapPath = filepath.Join(filepath.Dir(path), filepath.FromSlash(url))
	}

	cache, err := openCache(cmd, cfg)
	if err != nil {
		return nil, err
	}
	table, err := cache.Load(commandContext(cmd), mapPath)
	if err != nil {
		if explicit == "" && errors.Is(err, fsutil.ErrNotFound) {
			logger.Warn("input map not found", logging.FieldPath, mapPath)
			return nil, nil
		}
		return nil, fmt.Errorf("load input map: %w", err)
	}
	logger.Debug("loaded input map", logging.FieldPath, mapPath, logging.FieldSources, table.Sources())
	return table, nil
}

// queueEdits adds the splices and replacements of flags to doc.
func queueEdits(logger *log.Logger, doc *edit.Document, flags *editFlags) error {
	for _, spec := range flags.splices {
		index, count, text, err := parseSplice(spec)
		if err != nil {
			return err
		}
		doc.Replace(index, index+count, edit.Literal(text))
	}

	for _, spec := range flags.replaces {
		search, replacement, ok := strings.Cut(spec, "=")
		if !ok || search == "" {
			return fmt.Errorf("%w: replacement %q is not SEARCH=REPL", ErrInvalidUsage, spec)
		}

		var count int
		if flags.regex {
			re, err := regexp.Compile(search)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
			}
			count = doc.ReplaceMatches(re, flags.global, func(m edit.Match) string {
				return edit.Expand(replacement, m)
			})
		} else {
			count = doc.ReplaceText(search, flags.global, replacement)
		}

		if count == 0 {
			logger.Warn("no match", logging.FieldSearch, search)
		}
	}
	return nil
}

func parseSplice(spec string) (int, int, string, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("%w: splice %q is not I:N:TEXT", ErrInvalidUsage, spec)
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil || index < 0 {
		return 0, 0, "", fmt.Errorf("%w: splice offset %q", ErrInvalidUsage, parts[0])
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil || count < 0 {
		return 0, 0, "", fmt.Errorf("%w: splice length %q", ErrInvalidUsage, parts[1])
	}
	return index, count, parts[2], nil
}

func commentStyle(cfg *config.Config, path, content string) sourcemap.CommentStyle {
	if style, ok := langdetect.ParseCommentStyle(string(cfg.CommentStyle)); ok {
		return style
	}
	return langdetect.CommentStyle(path, []byte(content))
}
