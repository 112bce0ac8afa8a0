package writer

import (
	"fmt"

	"github.com/yaklabco/gosmap/pkg/sourcemap"
	"github.com/yaklabco/gosmap/pkg/utf16text"
)

// Mapped collects text and builds a source map of it.
//
// How a span is mapped depends on its origin:
//   - no origin: the text is copied and only the generated cursor moves;
//   - an origin without Map: the span is a verbatim copy of Source starting
//     at Line/Column, and mappings are emitted where the character class
//     changes;
//   - an origin with Map: the span is output of an earlier pass and Map's
//     mappings inside it are translated into this writer's map.
type Mapped struct {
	indenter
	out      utf16text.Text
	table    *sourcemap.Table
	line     int
	column   int
	lineOnly bool
}

// NewMapped returns an empty map-aware writer.
func NewMapped(opts Options) *Mapped {
	table := sourcemap.New()
	table.File = opts.File
	return &Mapped{
		indenter: newIndenter(opts.IndentUnit),
		table:    table,
		lineOnly: opts.LineOnly,
	}
}

// Position returns the generated line and column of the next unit.
func (m *Mapped) Position() (int, int) {
	return m.line, m.column
}

// Table returns the map built so far.
func (m *Mapped) Table() *sourcemap.Table {
	return m.table
}

// String returns the accumulated text.
func (m *Mapped) String() string {
	return m.out.String()
}

// MarshalJSON renders the map built so far.
func (m *Mapped) MarshalJSON() ([]byte, error) {
	return m.table.MarshalJSON()
}

// WriteString appends s with no source attribution.
func (m *Mapped) WriteString(s string) error {
	text := utf16text.From(s)
	return m.Write(text, 0, len(text), nil)
}

// Write appends text[start:end] and maps it according to origin.
func (m *Mapped) Write(text utf16text.Text, start, end int, origin *Origin) error {
	start, end = span(text, start, end)
	switch {
	case origin == nil:
		m.copyText(text[start:end])
		return nil
	case origin.Map == nil:
		return m.transcribe(text[start:end], origin)
	default:
		return m.carry(text[start:end], origin)
	}
}

// put emits indentation if due and then c, advancing the cursor. A CR that
// starts a CRLF pair does not end the line; its LF does.
func (m *Mapped) put(c uint16, next int) {
	m.indent(c)
	m.out = append(m.out, c)
	switch {
	case c == '\n', c == '\r' && next != '\n':
		m.line++
		m.column = 0
	default:
		m.column++
	}
}

// indent emits the indentation owed before c.
func (m *Mapped) indent(c uint16) {
	if nesting := m.pending(c); len(nesting) > 0 {
		m.out = append(m.out, nesting...)
		m.column += len(nesting)
	}
}

func (m *Mapped) copyText(text utf16text.Text) {
	for i, c := range text {
		m.put(c, peek(text, i+1))
	}
}

// transcribe copies a contiguous region of origin.Source, adding a mapping
// whenever the character class changes.
func (m *Mapped) transcribe(text utf16text.Text, origin *Origin) error {
	source := sourcemap.ByValue(origin.Source)
	name := sourcemap.Ref{}
	if origin.Name != "" {
		name = sourcemap.ByValue(origin.Name)
	}

	srcLine, srcColumn := origin.Line, origin.Column
	prev := classNone
	for i, c := range text {
		next := peek(text, i+1)
		if isNewline(c) {
			m.put(c, next)
			if c == '\r' && next == '\n' {
				continue
			}
			srcLine++
			srcColumn = 0
			prev = classNone
			continue
		}

		class := classify(c)
		if m.lineOnly {
			class = classWord
		}
		if class != prev {
			m.indent(c)
			_, err := m.table.AddMapping(sourcemap.Segment{
				GeneratedLine:   m.line,
				GeneratedColumn: m.column,
				Source:          source,
				SourceLine:      srcLine,
				SourceColumn:    srcColumn,
				Name:            name,
			})
			if err != nil {
				return fmt.Errorf("map %s:%d:%d: %w", origin.Source, srcLine, srcColumn, err)
			}
			name = sourcemap.Ref{}
			prev = class
		}
		m.put(c, next)
		srcColumn++
	}
	return nil
}

// carry copies output of an earlier pass, translating origin.Map's mappings
// that fall inside the span into this writer's map.
func (m *Mapped) carry(text utf16text.Text, origin *Origin) error {
	upstream := origin.Map
	remap := newRemapper(upstream, m.table)

	upLine, upColumn := origin.Line, origin.Column
	row := upstream.Line(upLine)
	next := firstAtOrAfter(row, upColumn)

	// The span may start between two upstream mappings; anchor it.
	anchor := next >= len(row) || int(row[next].GeneratedColumn) != upColumn

	for i, c := range text {
		following := peek(text, i+1)
		newline := isNewline(c)

		m.indent(c)
		if anchor && !newline {
			if err := m.addAnchor(row, next, upColumn, remap); err != nil {
				return err
			}
		}
		anchor = false
		for ; next < len(row) && int(row[next].GeneratedColumn) <= upColumn; next++ {
			if int(row[next].GeneratedColumn) < upColumn {
				continue
			}
			if err := m.addTranslated(row[next], remap); err != nil {
				return err
			}
		}
		m.put(c, following)

		if !newline || c == '\r' && following == '\n' {
			upColumn++
			continue
		}
		upLine++
		upColumn = 0
		row = upstream.Line(upLine)
		next = 0
	}
	return nil
}

// addAnchor adds a mapping at the cursor interpolated from the upstream
// mapping preceding row[next], or an unlocated one if there is none.
func (m *Mapped) addAnchor(row []sourcemap.Mapping, next, upColumn int, remap *remapper) error {
	if next == 0 {
		_, err := m.table.AddMapping(sourcemap.Segment{GeneratedLine: m.line, GeneratedColumn: m.column})
		return err
	}
	prev := row[next-1]
	if prev.HasSource {
		prev.SourceColumn += uint32(upColumn) - prev.GeneratedColumn
	}
	prev.HasName = false
	return m.addTranslated(prev, remap)
}

func (m *Mapped) addTranslated(mapping sourcemap.Mapping, remap *remapper) error {
	seg := sourcemap.Segment{GeneratedLine: m.line, GeneratedColumn: m.column}
	if mapping.HasSource {
		seg.Source = sourcemap.ByIndex(remap.source(mapping.SourceIndex))
		seg.SourceLine = int(mapping.SourceLine)
		seg.SourceColumn = int(mapping.SourceColumn)
		if mapping.HasName {
			seg.Name = sourcemap.ByIndex(remap.name(mapping.NameIndex))
		}
	}
	_, err := m.table.AddMapping(seg)
	return err
}

// firstAtOrAfter returns the index of the first mapping at or after column.
func firstAtOrAfter(row []sourcemap.Mapping, column int) int {
	for i, mapping := range row {
		if int(mapping.GeneratedColumn) >= column {
			return i
		}
	}
	return len(row)
}

func peek(text utf16text.Text, i int) int {
	if i >= len(text) {
		return -1
	}
	return int(text[i])
}
