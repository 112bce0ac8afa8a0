package sourcemap

import "iter"

// Adjust selects how GetSource extrapolates from an inexact match.
type Adjust uint8

const (
	// AdjustColumn offsets the source column by the distance between the
	// queried column and the matched mapping.
	AdjustColumn Adjust = 1 << iota

	// AdjustLine falls back to the last mapping of the nearest preceding
	// non-empty line when the queried line has no usable mapping.
	AdjustLine
)

// Location is a resolved position in an original source.
type Location struct {
	Source      string
	SourceIndex int
	Line        int
	Column      int

	// Name is empty and NameIndex is -1 when the mapping carries no name.
	Name      string
	NameIndex int
}

// Position is a location in the generated output.
type Position struct {
	Line   int
	Column int
}

// GetSource returns the original location of a generated position.
//
// The match is the last mapping on line whose generated column does not
// exceed column. With AdjustLine and no such mapping, the last mapping of
// the nearest earlier non-empty line is used and its source line is advanced
// by the number of generated lines in between. That fallback assumes the
// skipped generated lines correspond one to one with source lines, so the
// result is an approximation.
func (t *Table) GetSource(line, column int, adjust Adjust) (Location, bool) {
	if row := t.Line(line); len(row) > 0 {
		for i := len(row) - 1; i >= 0; i-- {
			mapping := row[i]
			if int(mapping.GeneratedColumn) > column {
				continue
			}
			if !mapping.HasSource {
				return Location{}, false
			}
			loc := t.location(mapping)
			if adjust&AdjustColumn != 0 {
				loc.Column += column - int(mapping.GeneratedColumn)
			}
			return loc, true
		}
	}

	if adjust&AdjustLine == 0 {
		return Location{}, false
	}

	for prev := min(line, len(t.lines)) - 1; prev >= 0; prev-- {
		row := t.lines[prev]
		if len(row) == 0 {
			continue
		}
		last := row[len(row)-1]
		if !last.HasSource {
			return Location{}, false
		}
		loc := t.location(last)
		loc.Line += line - prev
		loc.Name, loc.NameIndex = "", -1
		if adjust&AdjustColumn != 0 {
			loc.Column = column
		} else {
			loc.Column = 0
		}
		return loc, true
	}

	return Location{}, false
}

func (t *Table) location(mapping Mapping) Location {
	loc := Location{
		SourceIndex: int(mapping.SourceIndex),
		Line:        int(mapping.SourceLine),
		Column:      int(mapping.SourceColumn),
		NameIndex:   -1,
	}
	if loc.SourceIndex < len(t.sources) {
		loc.Source = t.sources[loc.SourceIndex]
	}
	if mapping.HasName {
		loc.NameIndex = int(mapping.NameIndex)
		if loc.NameIndex < len(t.names) {
			loc.Name = t.names[loc.NameIndex]
		}
	}
	return loc
}

// GetAllGenerated returns every generated position mapped to line of source.
func (t *Table) GetAllGenerated(source Ref, line int) []Position {
	return t.allGenerated(source, line, 0, false)
}

// GetAllGeneratedColumn returns the generated positions whose source column
// is the closest one at or before column on line of source. All mappings
// sharing that column are returned.
func (t *Table) GetAllGeneratedColumn(source Ref, line, column int) []Position {
	return t.allGenerated(source, line, column, true)
}

func (t *Table) allGenerated(source Ref, line, column int, exact bool) []Position {
	sourceIdx, ok := t.lookupRef(source)
	if !ok {
		return nil
	}

	var (
		result []Position
		best   = -1
	)
	for genLine, row := range t.lines {
		for _, mapping := range row {
			if !mapping.HasSource || int(mapping.SourceIndex) != sourceIdx || int(mapping.SourceLine) != line {
				continue
			}
			pos := Position{Line: genLine, Column: int(mapping.GeneratedColumn)}
			if !exact {
				result = append(result, pos)
				continue
			}

			offset := column - int(mapping.SourceColumn)
			switch {
			case offset < 0:
			case best < 0 || offset < best:
				best = offset
				result = append(result[:0], pos)
			case offset == best:
				result = append(result, pos)
			}
		}
	}

	return result
}

func (t *Table) lookupRef(ref Ref) (int, bool) {
	switch {
	case ref.IsZero():
		return 0, false
	case ref.byIndex:
		return ref.index, ref.index >= 0 && ref.index < len(t.sources)
	default:
		idx, ok := t.sourceIndex[ref.value]
		return idx, ok
	}
}

// EachMapping calls fn for every mapping in generated order until fn returns
// false. It reports whether the walk was stopped early.
func (t *Table) EachMapping(fn func(line int, mapping Mapping) bool) bool {
	for line, row := range t.lines {
		for _, mapping := range row {
			if !fn(line, mapping) {
				return true
			}
		}
	}
	return false
}

// All iterates over every mapping in generated order, keyed by generated
// line.
func (t *Table) All() iter.Seq2[int, Mapping] {
	return func(yield func(int, Mapping) bool) {
		t.EachMapping(yield)
	}
}
