package edit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/edit"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
	"github.com/yaklabco/gosmap/pkg/writer"
)

type point struct {
	line, column       int
	source             string
	srcLine, srcColumn int
}

func collect(table *sourcemap.Table) []point {
	var points []point
	for line, mapping := range table.All() {
		p := point{line: line, column: int(mapping.GeneratedColumn)}
		if mapping.HasSource {
			p.source = table.Sources()[mapping.SourceIndex]
			p.srcLine = int(mapping.SourceLine)
			p.srcColumn = int(mapping.SourceColumn)
		}
		points = append(points, p)
	}
	return points
}

func digits(opts ...edit.Option) *edit.Document {
	doc := edit.New("0123456789", opts...)
	doc.Replace(1, 4, edit.Literal("BCD"))
	doc.Insert(5, edit.Literal("X"))
	doc.Remove(7, 8)
	doc.Append(edit.Literal("Y"))
	return doc
}

func TestRenderAppliesReplacements(t *testing.T) {
	t.Parallel()

	out, err := digits().Render()
	require.NoError(t, err)
	assert.Equal(t, "0BCD4X5689Y", out)
}

func TestGenerateMapsUnchangedSpans(t *testing.T) {
	t.Parallel()

	w, err := digits(edit.WithPath("in.txt")).Generate(writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "0BCD4X5689Y", w.String())
	assert.Equal(t, []point{
		{0, 0, "in.txt", 0, 0},
		{0, 4, "in.txt", 0, 4},
		{0, 6, "in.txt", 0, 5},
		{0, 8, "in.txt", 0, 8},
	}, collect(w.Table()))
}

func TestGenerateWithoutPathCopiesVerbatim(t *testing.T) {
	t.Parallel()

	w, err := digits().Generate(writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "0BCD4X5689Y", w.String())
	assert.Zero(t, w.Table().LineCount())
}

func TestGenerateTracksLines(t *testing.T) {
	t.Parallel()

	doc := edit.New("a\nbc\r\nd", edit.WithPath("in.txt"))
	doc.Replace(3, 4, edit.Literal("Z"))

	w, err := doc.Generate(writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "a\nbZ\r\nd", w.String())
	assert.Equal(t, []point{
		{0, 0, "in.txt", 0, 0},
		{1, 0, "in.txt", 1, 0},
		{2, 0, "in.txt", 2, 0},
	}, collect(w.Table()))
}

func TestReplaceOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edit func(doc *edit.Document)
		want string
	}{
		{
			name: "insertions at one offset keep call order",
			edit: func(doc *edit.Document) {
				doc.Insert(2, edit.Literal("a"))
				doc.Insert(2, edit.Literal("b"))
			},
			want: "01ab2345",
		},
		{
			name: "later call with earlier offset is applied first",
			edit: func(doc *edit.Document) {
				doc.Replace(4, 5, edit.Literal("x"))
				doc.Insert(1, edit.Literal("y"))
			},
			want: "0y123x5",
		},
		{
			name: "insertion after a replacement at the same offset",
			edit: func(doc *edit.Document) {
				doc.Replace(2, 4, edit.Literal("R"))
				doc.Insert(2, edit.Literal("i"))
			},
			want: "01Ri45",
		},
		{
			name: "remove everything",
			edit: func(doc *edit.Document) {
				doc.Remove(0, 6)
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := edit.New("012345")
			tt.edit(doc)

			out, err := doc.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNestedDocument(t *testing.T) {
	t.Parallel()

	inner := edit.New("abc", edit.WithPath("inner.js"))
	inner.Replace(1, 2, edit.Literal("X"))

	outer := edit.New("let v = 1;", edit.WithPath("outer.js"))
	outer.Replace(8, 9, edit.Nested(inner))

	w, err := outer.Generate(writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "let v = aXc;", w.String())
	assert.Equal(t, []point{
		{0, 0, "outer.js", 0, 0},
		{0, 3, "outer.js", 0, 3},
		{0, 4, "outer.js", 0, 4},
		{0, 5, "outer.js", 0, 5},
		{0, 6, "outer.js", 0, 6},
		{0, 7, "outer.js", 0, 7},
		{0, 8, "inner.js", 0, 0},
		{0, 10, "inner.js", 0, 2},
		{0, 11, "outer.js", 0, 9},
	}, collect(w.Table()))
}

func TestDeferredContent(t *testing.T) {
	t.Parallel()

	t.Run("receives emit arguments", func(t *testing.T) {
		t.Parallel()

		doc := edit.New("hello world")
		doc.Replace(6, 11, edit.Deferred(func(args ...any) (edit.Content, error) {
			return edit.Literal(args[0].(string)), nil
		}))

		out, err := doc.Render("gopher")
		require.NoError(t, err)
		assert.Equal(t, "hello gopher", out)
	})

	t.Run("may produce nested content", func(t *testing.T) {
		t.Parallel()

		inner := edit.New("[x]")
		doc := edit.New("a-b")
		doc.Replace(1, 2, edit.Deferred(func(...any) (edit.Content, error) {
			return edit.Nested(inner), nil
		}))

		out, err := doc.Render()
		require.NoError(t, err)
		assert.Equal(t, "a[x]b", out)
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		doc := edit.New("abc")
		doc.Insert(1, edit.Deferred(func(...any) (edit.Content, error) {
			return edit.Content{}, boom
		}))

		_, err := doc.Render()
		require.ErrorIs(t, err, boom)
	})

	t.Run("nil generator is invalid", func(t *testing.T) {
		t.Parallel()

		doc := edit.New("abc")
		doc.Insert(1, edit.Deferred(nil))

		_, err := doc.Render()
		require.ErrorIs(t, err, edit.ErrInvalidContent)
	})
}

func TestGenerateCarriesUpstreamMap(t *testing.T) {
	t.Parallel()

	upstream := sourcemap.New()
	_, err := upstream.AddMapping(sourcemap.Segment{
		Source:     sourcemap.ByValue("orig.ts"),
		SourceLine: 3,
	})
	require.NoError(t, err)

	doc := edit.New("ab", edit.WithPath("mid.js"), edit.WithSourceMap(upstream))
	doc.Insert(1, edit.Literal("-"))

	w, err := doc.Generate(writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "a-b", w.String())
	assert.Equal(t, []point{
		{0, 0, "orig.ts", 3, 0},
		{0, 2, "orig.ts", 3, 1},
	}, collect(w.Table()))
}

type block struct{ body string }

func (b block) Emit(w writer.Writer, _ ...any) error {
	w.Indent()
	defer w.Unindent()
	return w.WriteString(b.body)
}

func TestNestedEmitterIndents(t *testing.T) {
	t.Parallel()

	doc := edit.New("{\n}", edit.WithPath("in.js"))
	doc.Insert(2, edit.Nested(block{body: "x;\ny;\n"}))

	w, err := doc.Generate(writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "{\n\tx;\n\ty;\n}", w.String())
	assert.Equal(t, []point{
		{0, 0, "in.js", 0, 0},
		{3, 0, "in.js", 1, 0},
	}, collect(w.Table()))
}
