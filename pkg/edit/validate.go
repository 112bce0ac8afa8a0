package edit

import (
	"errors"
	"fmt"
)

// RangeError describes a replacement whose range does not fit the base text.
type RangeError struct {
	Start   int
	End     int
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid replacement [%d:%d]: %s", e.Start, e.End, e.Message)
}

// ConflictError describes two overlapping replacements.
type ConflictError struct {
	First  Replacement
	Second Replacement
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping replacements: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End,
		e.Second.Start, e.Second.End)
}

// Validate checks that every replacement lies within the base text and that
// no two replacements overlap. Emit does not call it; callers that accept
// edits from untrusted sources can.
//
// All problems are reported, joined into one error.
func (d *Document) Validate() error {
	var errs []error

	for _, r := range d.replacements {
		switch {
		case r.Start < 0:
			errs = append(errs, &RangeError{Start: r.Start, End: r.End, Message: "start offset is negative"})
		case r.End < r.Start:
			errs = append(errs, &RangeError{Start: r.Start, End: r.End, Message: "end offset is before start offset"})
		case r.End > len(d.text):
			errs = append(errs, &RangeError{
				Start:   r.Start,
				End:     r.End,
				Message: fmt.Sprintf("end offset %d exceeds text length %d", r.End, len(d.text)),
			})
		}
	}

	for i, first := range d.replacements {
		for _, second := range d.replacements[i+1:] {
			if second.Start > first.Start && second.Start >= first.End {
				break
			}
			if overlaps(first, second) {
				errs = append(errs, &ConflictError{First: *first, Second: *second})
			}
		}
	}

	return errors.Join(errs...)
}

// overlaps reports whether two replacements, ordered by start, touch the
// same base text. Insertions at either edge of a replaced range do not.
func overlaps(first, second *Replacement) bool {
	if second.Start > first.Start {
		return second.Start < first.End
	}
	return first.End > first.Start && second.End > second.Start
}
