package edit

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gosmap/pkg/sourcemap"
	"github.com/yaklabco/gosmap/pkg/utf16text"
	"github.com/yaklabco/gosmap/pkg/writer"
)

// Source is an input file for the one-shot helpers.
type Source struct {
	Content   string
	Path      string
	SourceMap *sourcemap.Table
}

func (s Source) document() *Document {
	return New(s.Content, WithPath(s.Path), WithSourceMap(s.SourceMap))
}

// Match describes one pattern match handed to a replacement callback.
type Match struct {
	// Text is the matched text.
	Text string

	// Groups holds the capture groups; unmatched groups are empty.
	Groups []string

	// Index is the UTF-16 offset of the match in Input.
	Index int

	// Input is the whole searched text.
	Input string
}

// Splice removes deleteCount units at index and inserts text there.
func Splice(src Source, index, deleteCount int, text string, opts writer.Options) (*writer.Mapped, error) {
	doc := src.document()
	doc.Replace(index, index+deleteCount, Literal(text))
	return doc.Generate(opts)
}

// ReplaceString replaces the first occurrence of search. The input is
// returned unchanged when search does not occur.
func ReplaceString(src Source, search, replacement string, opts writer.Options) (*writer.Mapped, error) {
	doc := src.document()
	doc.ReplaceText(search, false, replacement)
	return doc.Generate(opts)
}

// ReplacePattern replaces the first match of re, or every match when global
// is set. The replacement may reference the match as $& and capture groups
// as $1 to $9; $$ is a literal dollar sign.
func ReplacePattern(src Source, re *regexp.Regexp, global bool, replacement string, opts writer.Options) (*writer.Mapped, error) {
	doc := src.document()
	doc.ReplaceMatches(re, global, func(m Match) string {
		return Expand(replacement, m)
	})
	return doc.Generate(opts)
}

// ReplacePatternFunc replaces matches of re with the text fn returns for
// each of them.
func ReplacePatternFunc(src Source, re *regexp.Regexp, global bool, fn func(Match) string, opts writer.Options) (*writer.Mapped, error) {
	doc := src.document()
	doc.ReplaceMatches(re, global, fn)
	return doc.Generate(opts)
}

// ReplaceText queues a replacement of the first occurrence of search in the
// base text, or of every occurrence when global is set. It returns the
// number of replacements queued. An empty search matches nothing.
func (d *Document) ReplaceText(search string, global bool, replacement string) int {
	if search == "" {
		return 0
	}

	width := utf16text.UnitLen(search)
	count, byteAt, unitAt := 0, 0, 0
	for {
		at := strings.Index(d.raw[byteAt:], search)
		if at < 0 {
			return count
		}
		unitAt += utf16text.UnitLen(d.raw[byteAt : byteAt+at])
		d.Replace(unitAt, unitAt+width, Literal(replacement))
		count++

		byteAt += at + len(search)
		unitAt += width
		if !global {
			return count
		}
	}
}

// ReplaceMatches queues a replacement for the first match of re in the base
// text, or for every match when global is set, with the text fn returns.
// It returns the number of replacements queued.
func (d *Document) ReplaceMatches(re *regexp.Regexp, global bool, fn func(Match) string) int {
	limit := 1
	if global {
		limit = -1
	}

	// Byte offsets from regexp are converted to UTF-16 offsets incrementally.
	byteAt, unitAt := 0, 0
	toUnits := func(offset int) int {
		unitAt += utf16text.UnitLen(d.raw[byteAt:offset])
		byteAt = offset
		return unitAt
	}

	matches := re.FindAllStringSubmatchIndex(d.raw, limit)
	for _, loc := range matches {
		match := Match{
			Text:   d.raw[loc[0]:loc[1]],
			Groups: make([]string, 0, len(loc)/2-1),
			Input:  d.raw,
		}
		for g := 2; g < len(loc); g += 2 {
			group := ""
			if loc[g] >= 0 {
				group = d.raw[loc[g]:loc[g+1]]
			}
			match.Groups = append(match.Groups, group)
		}

		start := toUnits(loc[0])
		end := toUnits(loc[1])
		match.Index = start
		d.Replace(start, end, Literal(fn(match)))
	}
	return len(matches)
}

// Expand substitutes $&, $1-$9 and $$ in template. References to groups the
// match does not have are kept literally.
func Expand(template string, m Match) string {
	if !strings.Contains(template, "$") {
		return template
	}

	var out strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 == len(template) {
			out.WriteByte(c)
			continue
		}

		next := template[i+1]
		switch {
		case next == '$':
			out.WriteByte('$')
			i++
		case next == '&':
			out.WriteString(m.Text)
			i++
		case next >= '1' && next <= '9':
			group := int(next - '1')
			if group < len(m.Groups) {
				out.WriteString(m.Groups[group])
			} else {
				out.WriteString(template[i : i+2])
			}
			i++
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}
