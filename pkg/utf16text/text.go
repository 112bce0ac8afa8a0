// Package utf16text provides a string type indexed by UTF-16 code units.
//
// Source map columns are counted in UTF-16 code units, so every offset handed
// to the generator core uses this unit rather than Go's byte offsets. Astral
// code points occupy two units.
package utf16text

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Text is an immutable sequence of UTF-16 code units.
type Text []uint16

// From encodes s as UTF-16.
func From(s string) Text {
	if s == "" {
		return nil
	}
	return Text(utf16.Encode([]rune(s)))
}

// String decodes the text back to UTF-8.
func (t Text) String() string {
	return string(utf16.Decode(t))
}

// Len returns the number of code units.
func (t Text) Len() int {
	return len(t)
}

// Slice returns t[start:end] with both bounds clamped to [0, len(t)].
func (t Text) Slice(start, end int) Text {
	start = clamp(start, len(t))
	end = clamp(end, len(t))
	if end < start {
		return nil
	}
	return t[start:end]
}

// Index returns the unit offset of the first occurrence of sub, or -1.
func (t Text) Index(sub Text) int {
	n := len(sub)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(t); i++ {
		if t[i] != sub[0] {
			continue
		}
		match := true
		for j := 1; j < n; j++ {
			if t[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// UnitLen returns the number of UTF-16 units needed to encode s.
func UnitLen(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func clamp(v, limit int) int {
	switch {
	case v < 0:
		return 0
	case v > limit:
		return limit
	default:
		return v
	}
}
