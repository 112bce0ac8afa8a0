// Package sourcemap implements the version 3 source map format: an in-memory
// mapping table, the Base64 VLQ codec for its textual form, point queries,
// and composition of maps from successive transformation passes.
//
// All lines, columns and indices are zero-based. Columns count UTF-16 code
// units.
package sourcemap

import (
	"fmt"

	"fortio.org/safecast"
)

// Version is the only source map revision this package reads and writes.
const Version = 3

// Mapping is one point correspondence on a generated line.
//
// The source triple is meaningful only when HasSource is set, and NameIndex
// only when HasName is set as well.
type Mapping struct {
	GeneratedColumn uint32
	SourceIndex     uint32
	SourceLine      uint32
	SourceColumn    uint32
	NameIndex       uint32
	HasSource       bool
	HasName         bool
}

// Ref names a source or a symbol either by its table index or by its string
// value. The zero Ref means "absent".
type Ref struct {
	value   string
	index   int
	byIndex bool
	set     bool
}

// ByIndex refers to an entry already present in the table.
func ByIndex(index int) Ref {
	return Ref{index: index, byIndex: true, set: true}
}

// ByValue refers to a source path or name, adding it to the table on use.
func ByValue(value string) Ref {
	return Ref{value: value, set: true}
}

// IsZero reports whether the reference is absent.
func (r Ref) IsZero() bool {
	return !r.set
}

// Segment describes a mapping to add to a table.
type Segment struct {
	GeneratedLine   int
	GeneratedColumn int

	// Source is optional. SourceLine and SourceColumn are ignored without it.
	Source       Ref
	SourceLine   int
	SourceColumn int

	// Name is optional and ignored without Source.
	Name Ref
}

// Table is a mutable source map.
//
// The outer index of the mappings is the generated line number. Lines with
// no mapping are kept as empty entries so that the index always equals the
// line. Mappings within a line are sorted by generated column.
type Table struct {
	// File is the name of the generated file the map describes.
	File string

	// SourceRoot is prepended to source paths by consumers.
	SourceRoot string

	sources  []string
	contents []*string
	names    []string
	lines    [][]Mapping

	sourceIndex map[string]int
	nameIndex   map[string]int
}

// New creates an empty table.
func New() *Table {
	return &Table{
		sources:     []string{},
		names:       []string{},
		sourceIndex: make(map[string]int),
		nameIndex:   make(map[string]int),
	}
}

// AddSource returns the index of path, appending it if it is new.
func (t *Table) AddSource(path string) int {
	if idx, ok := t.sourceIndex[path]; ok {
		return idx
	}
	t.sources = append(t.sources, path)
	t.contents = append(t.contents, nil)
	idx := len(t.sources) - 1
	t.sourceIndex[path] = idx
	return idx
}

// AddName returns the index of name, appending it if it is new.
func (t *Table) AddName(name string) int {
	if idx, ok := t.nameIndex[name]; ok {
		return idx
	}
	t.names = append(t.names, name)
	idx := len(t.names) - 1
	t.nameIndex[name] = idx
	return idx
}

// SourceIndex returns the index of path if the table references it.
func (t *Table) SourceIndex(path string) (int, bool) {
	idx, ok := t.sourceIndex[path]
	return idx, ok
}

// SetSourceContent records the original text of path, adding the source if
// needed.
func (t *Table) SetSourceContent(path, content string) {
	idx := t.AddSource(path)
	t.contents[idx] = &content
}

// SourceContent returns the recorded text of path.
func (t *Table) SourceContent(path string) (string, bool) {
	idx, ok := t.sourceIndex[path]
	if !ok || t.contents[idx] == nil {
		return "", false
	}
	return *t.contents[idx], true
}

// Sources returns the source paths in index order. The slice must not be
// modified.
func (t *Table) Sources() []string {
	return t.sources
}

// Names returns the symbol names in index order. The slice must not be
// modified.
func (t *Table) Names() []string {
	return t.names
}

// LineCount returns the number of generated lines the table covers.
func (t *Table) LineCount() int {
	return len(t.lines)
}

// Line returns the mappings of a generated line, or nil when the line has
// none. The slice must not be modified.
func (t *Table) Line(line int) []Mapping {
	if line < 0 || line >= len(t.lines) {
		return nil
	}
	return t.lines[line]
}

// AddMapping inserts a mapping, keeping the line sorted by generated column.
// Mappings with an equal column are placed after the existing ones.
func (t *Table) AddMapping(seg Segment) (Mapping, error) {
	column, err := toField(seg.GeneratedColumn, "generated column")
	if err != nil {
		return Mapping{}, err
	}
	if seg.GeneratedLine < 0 {
		return Mapping{}, fmt.Errorf("generated line %d: %w", seg.GeneratedLine, ErrOutOfRange)
	}

	mapping := Mapping{GeneratedColumn: column}
	if !seg.Source.IsZero() {
		if err := t.locate(&mapping, seg); err != nil {
			return Mapping{}, err
		}
	}

	t.insert(seg.GeneratedLine, mapping)
	return mapping, nil
}

func (t *Table) locate(mapping *Mapping, seg Segment) error {
	sourceIdx, err := t.resolveRef(seg.Source, t.AddSource, len(t.sources), "source index")
	if err != nil {
		return err
	}
	if mapping.SourceLine, err = toField(seg.SourceLine, "source line"); err != nil {
		return err
	}
	if mapping.SourceColumn, err = toField(seg.SourceColumn, "source column"); err != nil {
		return err
	}
	mapping.SourceIndex = sourceIdx
	mapping.HasSource = true

	if seg.Name.IsZero() {
		return nil
	}
	nameIdx, err := t.resolveRef(seg.Name, t.AddName, len(t.names), "name index")
	if err != nil {
		return err
	}
	mapping.NameIndex = nameIdx
	mapping.HasName = true
	return nil
}

func (t *Table) resolveRef(ref Ref, add func(string) int, count int, what string) (uint32, error) {
	if !ref.byIndex {
		return toField(add(ref.value), what)
	}
	if ref.index >= count {
		return 0, fmt.Errorf("%s %d exceeds table size %d: %w", what, ref.index, count, ErrOutOfRange)
	}
	return toField(ref.index, what)
}

// insert places mapping on line, growing the outer slice with empty lines as
// needed.
func (t *Table) insert(line int, mapping Mapping) {
	for len(t.lines) <= line {
		t.lines = append(t.lines, nil)
	}

	row := t.lines[line]
	if len(row) == 0 || row[len(row)-1].GeneratedColumn <= mapping.GeneratedColumn {
		t.lines[line] = append(row, mapping)
		return
	}

	at := len(row)
	for at > 0 && row[at-1].GeneratedColumn > mapping.GeneratedColumn {
		at--
	}
	row = append(row, Mapping{})
	copy(row[at+1:], row[at:])
	row[at] = mapping
	t.lines[line] = row
}

func toField(value int, what string) (uint32, error) {
	field, err := safecast.Conv[uint32](value)
	if err != nil {
		return 0, fmt.Errorf("%s %d: %w", what, value, ErrOutOfRange)
	}
	return field, nil
}
