package edit

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gosmap/pkg/writer"
)

// ErrInvalidContent is returned when replacement content cannot be resolved
// to text or a nested emitter.
var ErrInvalidContent = errors.New("invalid replacement content")

// Emitter is anything that can stream itself into a writer. Documents are
// emitters, so they nest as replacement content.
type Emitter interface {
	Emit(w writer.Writer, args ...any) error
}

// Generator produces replacement content at generation time from the
// arguments passed to Emit.
type Generator func(args ...any) (Content, error)

type contentKind int

const (
	kindLiteral contentKind = iota
	kindNested
	kindDeferred
)

// Content is the value a replacement writes: literal text, a nested
// emitter, or a generator evaluated lazily.
type Content struct {
	kind     contentKind
	text     string
	nested   Emitter
	generate Generator
}

// Literal is replacement content written as-is with no source attribution.
func Literal(text string) Content {
	return Content{kind: kindLiteral, text: text}
}

// Nested is replacement content produced by another emitter.
func Nested(e Emitter) Content {
	return Content{kind: kindNested, nested: e}
}

// Deferred is replacement content computed when the document is emitted.
func Deferred(fn Generator) Content {
	return Content{kind: kindDeferred, generate: fn}
}

// maxDeferredDepth bounds generators that return further generators.
const maxDeferredDepth = 64

// emit writes the content, resolving generators with args first.
func (c Content) emit(w writer.Writer, args []any) error {
	for depth := 0; c.kind == kindDeferred; depth++ {
		if c.generate == nil || depth == maxDeferredDepth {
			return ErrInvalidContent
		}
		next, err := c.generate(args...)
		if err != nil {
			return fmt.Errorf("generate replacement: %w", err)
		}
		c = next
	}

	switch c.kind {
	case kindLiteral:
		if c.text == "" {
			return nil
		}
		return w.WriteString(c.text)
	case kindNested:
		if c.nested == nil {
			return ErrInvalidContent
		}
		return c.nested.Emit(w, args...)
	default:
		return ErrInvalidContent
	}
}
