// Package writer accumulates generated text piece by piece, applying
// indentation and, in its map-aware form, building the source map of the
// output as it goes.
package writer

import (
	"github.com/yaklabco/gosmap/pkg/sourcemap"
	"github.com/yaklabco/gosmap/pkg/utf16text"
)

// DefaultIndentUnit is one level of indentation unless Options says
// otherwise.
const DefaultIndentUnit = "\t"

// Writer is the sink an edit document streams into.
type Writer interface {
	// Indent pushes one indentation level.
	Indent()

	// Unindent pops one indentation level.
	Unindent()

	// Write appends text[start:end]. A nil origin writes the span with no
	// source attribution.
	Write(text utf16text.Text, start, end int, origin *Origin) error

	// WriteString appends s with no source attribution.
	WriteString(s string) error

	// String returns the text written so far.
	String() string
}

// PositionTracker is implemented by writers that record source positions.
// Callers use it to skip computing origins for writers that ignore them.
type PositionTracker interface {
	Position() (line, column int)
}

// Origin describes where a written span comes from.
type Origin struct {
	// Source is the path of the file the span was copied from.
	Source string

	// Line and Column locate the first unit of the span: in Source, or in
	// the generated space of Map when Map is set.
	Line   int
	Column int

	// Name is attached to the first mapping emitted for the span.
	Name string

	// Map is the source map of the pass that produced the span. Its
	// mappings are carried over instead of synthesizing new ones.
	Map *sourcemap.Table
}

// Options configures a writer.
type Options struct {
	// IndentUnit is the text of one indentation level.
	IndentUnit string

	// LineOnly emits a single mapping per line for transcribed spans.
	LineOnly bool

	// File is recorded as the generated file name of the map.
	File string
}

// indenter inserts the current indentation before the first non-newline
// unit of every line.
type indenter struct {
	unit        utf16text.Text
	nesting     utf16text.Text
	levels      []int
	atLineStart bool
}

func newIndenter(unit string) indenter {
	if unit == "" {
		unit = DefaultIndentUnit
	}
	return indenter{unit: utf16text.From(unit), atLineStart: true}
}

// Indent pushes one indentation level.
func (in *indenter) Indent() {
	in.levels = append(in.levels, len(in.nesting))
	in.nesting = append(in.nesting[:len(in.nesting):len(in.nesting)], in.unit...)
}

// Unindent pops one indentation level. Extra calls are ignored.
func (in *indenter) Unindent() {
	if len(in.levels) == 0 {
		return
	}
	last := in.levels[len(in.levels)-1]
	in.levels = in.levels[:len(in.levels)-1]
	in.nesting = in.nesting[:last]
}

// pending returns the indentation owed before unit c and updates the line
// start flag.
func (in *indenter) pending(c uint16) utf16text.Text {
	if isNewline(c) {
		in.atLineStart = true
		return nil
	}
	if !in.atLineStart {
		return nil
	}
	in.atLineStart = false
	return in.nesting
}

func isNewline(c uint16) bool {
	return c == '\n' || c == '\r'
}

// span clamps [start, end) to text.
func span(text utf16text.Text, start, end int) (int, int) {
	start = max(start, 0)
	end = min(end, len(text))
	return start, max(start, end)
}
