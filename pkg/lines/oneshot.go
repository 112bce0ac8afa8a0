package lines

import "github.com/yaklabco/gosmap/pkg/utf16text"

// Position converts offset to a line and column without building an Index.
// It has the same boundary behavior as Index.Position and suits single
// lookups.
func Position(text utf16text.Text, offset int) (int, int) {
	if offset <= 0 {
		return 0, offset
	}

	line, lineStart := 0, 0
	limit := min(offset, len(text))
	for idx := 0; idx < limit; idx++ {
		if isBreak(text, idx) {
			line++
			lineStart = idx + 1
		}
	}

	return line, offset - lineStart
}

// Offset converts a line and column to an offset without building an Index.
func Offset(text utf16text.Text, line, column int) int {
	if line <= 0 {
		return column
	}

	current := 0
	for idx := 0; idx < len(text); idx++ {
		if !isBreak(text, idx) {
			continue
		}
		current++
		if current == line {
			return idx + 1 + column
		}
	}

	return len(text) + column
}

// isBreak reports whether a line ends with the unit at idx.
func isBreak(text utf16text.Text, idx int) bool {
	switch text[idx] {
	case '\n':
		return true
	case '\r':
		return idx+1 >= len(text) || text[idx+1] != '\n'
	default:
		return false
	}
}
