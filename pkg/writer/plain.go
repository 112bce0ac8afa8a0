package writer

import "github.com/yaklabco/gosmap/pkg/utf16text"

// Plain collects text and indentation without tracking positions.
type Plain struct {
	indenter
	out utf16text.Text
}

// NewPlain returns an empty plain writer.
func NewPlain(opts Options) *Plain {
	return &Plain{indenter: newIndenter(opts.IndentUnit)}
}

// Write appends text[start:end]; origin is ignored.
func (p *Plain) Write(text utf16text.Text, start, end int, _ *Origin) error {
	start, end = span(text, start, end)
	for _, c := range text[start:end] {
		p.out = append(p.out, p.pending(c)...)
		p.out = append(p.out, c)
	}
	return nil
}

// WriteString appends s.
func (p *Plain) WriteString(s string) error {
	text := utf16text.From(s)
	return p.Write(text, 0, len(text), nil)
}

// String returns the accumulated text.
func (p *Plain) String() string {
	return p.out.String()
}
