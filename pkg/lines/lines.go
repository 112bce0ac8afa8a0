// Package lines converts between flat UTF-16 offsets and zero-based
// line/column positions.
//
// Line terminators are "\n", "\r" and "\r\n"; the pair counts as a single
// terminator.
package lines

import "github.com/yaklabco/gosmap/pkg/utf16text"

// Index holds the start offset of every line of an immutable text.
//
// Lookups remember the last line they resolved and walk from there, which
// keeps monotonic or clustered queries cheap. An Index is not safe for
// concurrent use because of that cache.
type Index struct {
	starts []int
	length int
	last   int
}

// NewIndex builds the line table for text.
func NewIndex(text utf16text.Text) *Index {
	return &Index{
		starts: BuildStarts(text),
		length: len(text),
	}
}

// BuildStarts returns the offset at which each line begins. The first entry
// is always 0.
func BuildStarts(text utf16text.Text) []int {
	starts := []int{0}
	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '\n':
			starts = append(starts, idx+1)
		case '\r':
			// CRLF is terminated by its '\n'.
			if idx+1 < len(text) && text[idx+1] == '\n' {
				continue
			}
			starts = append(starts, idx+1)
		}
	}
	return starts
}

// LineCount returns the number of lines in the text.
func (x *Index) LineCount() int {
	return len(x.starts)
}

// LineStart returns the offset of the first unit of line, or -1 if line is
// out of range.
func (x *Index) LineStart(line int) int {
	if line < 0 || line >= len(x.starts) {
		return -1
	}
	return x.starts[line]
}

// Position converts offset to a line and column.
//
// Offsets at or before zero map to line 0 with the offset as column, so
// negative columns describe positions before the start of the text. Offsets
// past the end extend the last line.
func (x *Index) Position(offset int) (int, int) {
	if offset <= 0 {
		x.last = 0
		return 0, offset
	}

	line := x.last
	for line+1 < len(x.starts) && x.starts[line+1] <= offset {
		line++
	}
	for line > 0 && x.starts[line] > offset {
		line--
	}
	x.last = line

	return line, offset - x.starts[line]
}

// Offset converts a line and column back to an offset.
//
// Lines past the last one are extrapolated from the end of the text so that
// positions beyond the end remain representable.
func (x *Index) Offset(line, column int) int {
	switch {
	case line <= 0:
		return column
	case line < len(x.starts):
		return x.starts[line] + column
	default:
		return x.length + column
	}
}
