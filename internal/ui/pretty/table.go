package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

// Table formatting constants.
const (
	tablePadding      = 2
	tableColumnCount  = 4 // GENERATED, SOURCE, ORIGINAL, NAME
	minGeneratedWidth = 9
	minSourceWidth    = 16
	minOriginalWidth  = 8
	minNameWidth      = 6
	heavySeparator    = "="
	lightSeparator    = "-"
	unmappedMarker    = "-"
)

// MappingRow is one mapping as displayed. Lines are 1-based and columns
// 0-based, the convention of browser devtools.
type MappingRow struct {
	GeneratedLine int
	Generated     string
	Source        string
	Original      string
	Name          string
	Mapped        bool
}

// Position renders a 0-based line and column for display.
func Position(line, column int) string {
	return fmt.Sprintf("%d:%d", line+1, column)
}

// Rows lists the mappings of table in generated order.
func Rows(table *sourcemap.Table) []MappingRow {
	var rows []MappingRow
	for line, mapping := range table.All() {
		row := MappingRow{
			GeneratedLine: line,
			Generated:     Position(line, int(mapping.GeneratedColumn)),
			Source:        unmappedMarker,
			Original:      unmappedMarker,
		}
		if mapping.HasSource {
			row.Mapped = true
			row.Source = sourceName(table, mapping.SourceIndex)
			row.Original = Position(int(mapping.SourceLine), int(mapping.SourceColumn))
			if mapping.HasName && int(mapping.NameIndex) < len(table.Names()) {
				row.Name = table.Names()[mapping.NameIndex]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func sourceName(table *sourcemap.Table, idx uint32) string {
	sources := table.Sources()
	if int(idx) < len(sources) {
		return sources[idx]
	}
	return fmt.Sprintf("#%d", idx)
}

// TableFormatter formats mapping tables for the terminal.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	generated int
	source    int
	original  int
	name      int
}

func (w columnWidths) total() int {
	return w.generated + w.source + w.original + w.name + tablePadding*tableColumnCount
}

// FormatTable renders every mapping of table, grouping rows by generated
// line. An empty table renders as the empty string.
func (t *TableFormatter) FormatTable(table *sourcemap.Table) string {
	rows := Rows(table)
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if i > 0 && row.GeneratedLine != rows[i-1].GeneratedLine {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" Lines are 1-based, columns 0-based; %s = no source", unmappedMarker)))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths sizes columns to their content, shrinking the
// source column first to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []MappingRow) columnWidths {
	widths := columnWidths{
		generated: minGeneratedWidth,
		source:    minSourceWidth,
		original:  minOriginalWidth,
		name:      minNameWidth,
	}
	for _, row := range rows {
		widths.generated = max(widths.generated, len(row.Generated))
		widths.source = max(widths.source, len(row.Source))
		widths.original = max(widths.original, len(row.Original))
		widths.name = max(widths.name, len(row.Name))
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.source = max(minSourceWidth, widths.source-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.name = max(minNameWidth, widths.name-excess)
	}
	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.generated, "GENERATED",
		widths.source, "SOURCE",
		widths.original, "ORIGINAL",
		widths.name, "NAME",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row MappingRow, widths columnWidths) string {
	generated := t.styles.Generated.Render(fmt.Sprintf("%-*s", widths.generated, row.Generated))
	if !row.Mapped {
		rest := fmt.Sprintf("%-*s  %-*s", widths.source, row.Source, widths.original, row.Original)
		return " " + generated + "  " + t.styles.Unmapped.Render(rest)
	}

	source := t.styles.Source.Render(fmt.Sprintf("%-*s", widths.source, truncateFilePath(row.Source, widths.source)))
	original := t.styles.Original.Render(fmt.Sprintf("%-*s", widths.original, row.Original))
	name := t.styles.Name.Render(truncateString(row.Name, widths.name))
	return strings.TrimRight(" "+generated+"  "+source+"  "+original+"  "+name, " ")
}

// FormatSummary renders a one-line overview of a table.
func (t *TableFormatter) FormatSummary(path string, table *sourcemap.Table) string {
	mappings := 0
	for range table.All() {
		mappings++
	}

	parts := []string{
		t.styles.FilePath.Render(path),
		fmt.Sprintf("%d sources", len(table.Sources())),
		fmt.Sprintf("%d names", len(table.Names())),
		fmt.Sprintf("%d mappings", mappings),
		fmt.Sprintf("%d lines", table.LineCount()),
	}
	if table.File != "" {
		parts = append(parts, t.styles.Dim.Render("file "+table.File))
	}
	return " " + strings.Join(parts, " | ")
}

// FormatLocation renders the result of a lookup.
func (t *TableFormatter) FormatLocation(loc sourcemap.Location) string {
	var builder strings.Builder
	builder.WriteString(t.styles.Source.Render(loc.Source))
	builder.WriteString(":")
	builder.WriteString(t.styles.Original.Render(Position(loc.Line, loc.Column)))
	if loc.Name != "" {
		builder.WriteString(" ")
		builder.WriteString(t.styles.Name.Render(loc.Name))
	}
	return builder.String()
}

// FormatNotFound renders a lookup miss.
func (t *TableFormatter) FormatNotFound(what string) string {
	return t.styles.Warning.Render("no mapping") + " " + t.styles.Dim.Render(what)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
