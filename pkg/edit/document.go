// Package edit models a text as an immutable base plus an ordered list of
// range replacements, and replays both through a writer to produce the
// edited output and its source map.
package edit

import (
	"fmt"

	"github.com/yaklabco/gosmap/pkg/lines"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
	"github.com/yaklabco/gosmap/pkg/utf16text"
	"github.com/yaklabco/gosmap/pkg/writer"
)

// Replacement substitutes Content for the base text in [Start, End).
// Offsets count UTF-16 code units.
type Replacement struct {
	// Start is the offset where the replacement begins (inclusive).
	Start int

	// End is the offset where the replacement ends (exclusive).
	End int

	// Content is written in place of the replaced range.
	Content Content
}

// Document is a base text with pending replacements.
//
// Replacements must not overlap; that is the caller's responsibility and is
// only checked by Validate. A document must not contain itself, directly or
// through nested content.
type Document struct {
	raw          string
	text         utf16text.Text
	path         string
	sourceMap    *sourcemap.Table
	replacements []*Replacement
	index        *lines.Index
}

// Option configures a Document.
type Option func(*Document)

// WithPath names the file the base text was read from. Unchanged spans are
// mapped back to it.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithSourceMap supplies the existing map of the base text, so that the
// generated map points past it to the original sources.
func WithSourceMap(table *sourcemap.Table) Option {
	return func(d *Document) {
		d.sourceMap = table
	}
}

// New creates a document over text.
func New(text string, opts ...Option) *Document {
	doc := &Document{raw: text, text: utf16text.From(text)}
	for _, opt := range opts {
		opt(doc)
	}
	return doc
}

// Len returns the base text length in UTF-16 code units.
func (d *Document) Len() int {
	return len(d.text)
}

// Text returns the base text.
func (d *Document) Text() string {
	return d.raw
}

// Path returns the base path.
func (d *Document) Path() string {
	return d.path
}

// Replacements returns the pending replacements in application order.
func (d *Document) Replacements() []*Replacement {
	return d.replacements
}

// Replace substitutes content for [start, end). Replacements are kept sorted
// by start; one starting where others start goes after them.
func (d *Document) Replace(start, end int, content Content) *Replacement {
	r := &Replacement{Start: start, End: end, Content: content}

	at := len(d.replacements)
	for at > 0 && d.replacements[at-1].Start > start {
		at--
	}
	d.replacements = append(d.replacements, nil)
	copy(d.replacements[at+1:], d.replacements[at:])
	d.replacements[at] = r

	return r
}

// Insert adds content at offset.
func (d *Document) Insert(offset int, content Content) *Replacement {
	return d.Replace(offset, offset, content)
}

// Append adds content at the end of the base text.
func (d *Document) Append(content Content) *Replacement {
	return d.Replace(len(d.text), len(d.text), content)
}

// Remove deletes [start, end).
func (d *Document) Remove(start, end int) *Replacement {
	return d.Replace(start, end, Literal(""))
}

// Emit streams the edited text into w. args are handed to deferred content
// and to nested emitters.
func (d *Document) Emit(w writer.Writer, args ...any) error {
	_, tracked := w.(writer.PositionTracker)

	cursor := 0
	for _, r := range d.replacements {
		if err := d.flush(w, cursor, r.Start, tracked); err != nil {
			return err
		}
		if err := r.Content.emit(w, args); err != nil {
			return fmt.Errorf("replacement [%d:%d]: %w", r.Start, r.End, err)
		}
		cursor = max(cursor, r.End)
	}

	return d.flush(w, cursor, len(d.text), tracked)
}

// flush writes the unchanged base text in [start, end).
func (d *Document) flush(w writer.Writer, start, end int, tracked bool) error {
	start = max(start, 0)
	end = min(end, len(d.text))
	if start >= end {
		return nil
	}

	if !tracked || (d.path == "" && d.sourceMap == nil) {
		return w.Write(d.text, start, end, nil)
	}

	if d.index == nil {
		d.index = lines.NewIndex(d.text)
	}
	line, column := d.index.Position(start)
	return w.Write(d.text, start, end, &writer.Origin{
		Source: d.path,
		Line:   line,
		Column: column,
		Map:    d.sourceMap,
	})
}

// Generate emits the document into a fresh map-aware writer and returns it.
func (d *Document) Generate(opts writer.Options, args ...any) (*writer.Mapped, error) {
	w := writer.NewMapped(opts)
	if err := d.Emit(w, args...); err != nil {
		return nil, err
	}
	return w, nil
}

// Render emits the document into a plain writer and returns the text.
func (d *Document) Render(args ...any) (string, error) {
	w := writer.NewPlain(writer.Options{})
	if err := d.Emit(w, args...); err != nil {
		return "", err
	}
	return w.String(), nil
}
