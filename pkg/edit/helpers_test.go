package edit_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/edit"
	"github.com/yaklabco/gosmap/pkg/writer"
)

func TestSplice(t *testing.T) {
	t.Parallel()

	w, err := edit.Splice(edit.Source{Content: "abcdef", Path: "in.txt"}, 2, 2, "XY", writer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "abXYef", w.String())
	assert.Equal(t, []point{
		{0, 0, "in.txt", 0, 0},
		{0, 4, "in.txt", 0, 4},
	}, collect(w.Table()))
}

func TestReplaceString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		search  string
		repl    string
		want    string
	}{
		{name: "first occurrence only", content: "a.b.c", search: ".", repl: "-", want: "a-b.c"},
		{name: "missing search", content: "abc", search: "x", repl: "-", want: "abc"},
		{name: "after astral character", content: "😀ab", search: "a", repl: "A", want: "😀Ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := edit.ReplaceString(edit.Source{Content: tt.content}, tt.search, tt.repl, writer.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.String())
		})
	}
}

func TestReplacePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		pattern string
		global  bool
		repl    string
		want    string
	}{
		{name: "first match", content: "a1b22c", pattern: `\d+`, repl: "#", want: "a#b22c"},
		{name: "global", content: "a1b22c", pattern: `\d+`, global: true, repl: "#", want: "a#b#c"},
		{name: "whole match", content: "foo bar", pattern: `\w+`, global: true, repl: "<$&>", want: "<foo> <bar>"},
		{name: "groups", content: "key=value", pattern: `(\w+)=(\w+)`, repl: "$2=$1", want: "value=key"},
		{name: "escaped dollar", content: "5", pattern: `\d`, repl: "$$$&", want: "$5"},
		{name: "missing group is literal", content: "ab", pattern: `(a)`, repl: "$1$2", want: "a$2b"},
		{name: "unmatched group is empty", content: "b", pattern: `(a)?b`, repl: "[$1]", want: "[]"},
		{name: "no match", content: "abc", pattern: `\d`, repl: "#", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			re := regexp.MustCompile(tt.pattern)
			w, err := edit.ReplacePattern(edit.Source{Content: tt.content}, re, tt.global, tt.repl, writer.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.String())
		})
	}
}

func TestReplacePatternFunc(t *testing.T) {
	t.Parallel()

	var matches []edit.Match
	re := regexp.MustCompile(`(\w)(\w*)`)
	w, err := edit.ReplacePatternFunc(
		edit.Source{Content: "é foo bar", Path: "in.txt"},
		re, true,
		func(m edit.Match) string {
			matches = append(matches, m)
			return strings.ToUpper(m.Groups[0]) + m.Groups[1]
		},
		writer.Options{},
	)
	require.NoError(t, err)

	assert.Equal(t, "é Foo Bar", w.String())
	require.Len(t, matches, 2, "non-ASCII letters are not word characters")
	assert.Equal(t, "foo", matches[0].Text)
	assert.Equal(t, []string{"f", "oo"}, matches[0].Groups)
	assert.Equal(t, 2, matches[0].Index)
	assert.Equal(t, 6, matches[1].Index)
	assert.Equal(t, "é foo bar", matches[1].Input)
	assert.Equal(t, []point{
		{0, 0, "in.txt", 0, 0},
		{0, 1, "in.txt", 0, 1},
		{0, 5, "in.txt", 0, 5},
	}, collect(w.Table()))
}

func TestDocumentReplaceText(t *testing.T) {
	t.Parallel()

	doc := edit.New("a-b-c")
	assert.Equal(t, 2, doc.ReplaceText("-", true, "+"))
	assert.Equal(t, 0, doc.ReplaceText("", true, "x"))
	doc.Insert(0, edit.Literal(">"))

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Equal(t, ">a+b+c", out)
	require.NoError(t, doc.Validate())
}

func TestExpand(t *testing.T) {
	t.Parallel()

	m := edit.Match{Text: "ab", Groups: []string{"a", "b"}}
	assert.Equal(t, "b-a [ab] $ $3 $", edit.Expand("$2-$1 [$&] $$ $3 $", m))
	assert.Equal(t, "plain", edit.Expand("plain", m))
}
