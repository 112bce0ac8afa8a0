package lines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/lines"
	"github.com/yaklabco/gosmap/pkg/utf16text"
)

func TestBuildStarts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []int
	}{
		{"empty content", "", []int{0}},
		{"single line no newline", "hello", []int{0}},
		{"single line with LF", "hello\n", []int{0, 6}},
		{"single line with CRLF", "hello\r\n", []int{0, 7}},
		{"lone CR", "a\rb", []int{0, 2}},
		{"mixed terminators", "a\nb\r\nc\rd", []int{0, 2, 5, 7}},
		{"consecutive LF", "\n\n", []int{0, 1, 2}},
		{"CR then CRLF", "\r\r\n", []int{0, 1, 3}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := lines.BuildStarts(utf16text.From(testCase.content))
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestIndexPosition(t *testing.T) {
	t.Parallel()

	index := lines.NewIndex(utf16text.From("line1\nline2\r\nline3"))

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start", 0, 0, 0},
		{"negative keeps column", -4, 0, -4},
		{"first line", 3, 0, 3},
		{"newline belongs to its line", 5, 0, 5},
		{"second line start", 6, 1, 0},
		{"between CR and LF", 12, 1, 6},
		{"third line", 15, 2, 2},
		{"past end extends last line", 25, 2, 12},
	}

	// Sequential on purpose: the index cache is exercised in both directions.
	for _, testCase := range tests {
		line, column := index.Position(testCase.offset)
		assert.Equal(t, testCase.line, line, testCase.name)
		assert.Equal(t, testCase.column, column, testCase.name)
	}

	// Walk backwards to force the cache to retreat.
	line, column := index.Position(7)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)
	line, column = index.Position(1)
	assert.Equal(t, 0, line)
	assert.Equal(t, 1, column)
}

func TestIndexOffset(t *testing.T) {
	t.Parallel()

	index := lines.NewIndex(utf16text.From("ab\ncd\nef"))
	assert.Equal(t, 1, index.Offset(0, 1))
	assert.Equal(t, -2, index.Offset(-1, -2))
	assert.Equal(t, 4, index.Offset(1, 1))
	assert.Equal(t, 7, index.Offset(2, 1))
	assert.Equal(t, 11, index.Offset(5, 3), "lines past the end extrapolate from the text length")
	assert.Equal(t, 3, index.LineCount())
	assert.Equal(t, 6, index.LineStart(2))
	assert.Equal(t, -1, index.LineStart(3))
}

func TestOneShotMatchesIndex(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "x", "a\nb", "a\r\nb\rc\n", "\r\n\r\n", "tail\n"}
	for _, input := range inputs {
		text := utf16text.From(input)
		index := lines.NewIndex(text)
		for offset := -2; offset <= len(text)+2; offset++ {
			wantLine, wantCol := index.Position(offset)
			gotLine, gotCol := lines.Position(text, offset)
			require.Equal(t, wantLine, gotLine, "input %q offset %d", input, offset)
			require.Equal(t, wantCol, gotCol, "input %q offset %d", input, offset)
		}
		for line := -1; line <= index.LineCount()+1; line++ {
			assert.Equal(t, index.Offset(line, 2), lines.Offset(text, line, 2), "input %q line %d", input, line)
		}
	}
}

func FuzzPositionRoundTrip(f *testing.F) {
	f.Add("hello\nworld", 3)
	f.Add("a\r\nb\rc", 4)
	f.Add("", 0)

	f.Fuzz(func(t *testing.T, content string, offset int) {
		text := utf16text.From(content)
		if offset < 0 || offset > len(text) {
			return
		}
		index := lines.NewIndex(text)
		line, column := index.Position(offset)
		if got := index.Offset(line, column); got != offset {
			t.Fatalf("Offset(Position(%d)) = %d", offset, got)
		}
		oneLine, oneCol := lines.Position(text, offset)
		if oneLine != line || oneCol != column {
			t.Fatalf("one-shot (%d,%d) != index (%d,%d)", oneLine, oneCol, line, column)
		}
	})
}
