package sourcemap

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// xssiPrefix may precede a map served over HTTP to defeat script inclusion.
const xssiPrefix = ")]}'"

// Parse builds a table from the JSON form of a version 3 source map.
//
// A leading ")]}'" guard is ignored. Sectioned maps and maps that declare a
// version other than 3 are rejected.
func Parse(data []byte) (*Table, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte(xssiPrefix)) {
		data = bytes.TrimSpace(data[len(xssiPrefix):])
	}

	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrInvalidJSON
	}

	if root.Get("sections").Exists() {
		return nil, ErrIndexedMap
	}
	if version := root.Get("version"); version.Exists() && (version.Type != gjson.Number || version.Num != Version) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version.Raw)
	}

	table := New()
	table.File = root.Get("file").String()
	table.SourceRoot = root.Get("sourceRoot").String()

	for _, source := range root.Get("sources").Array() {
		table.appendSource(source.String())
	}
	for idx, content := range root.Get("sourcesContent").Array() {
		if idx >= len(table.sources) || content.Type == gjson.Null {
			continue
		}
		text := content.String()
		table.contents[idx] = &text
	}
	for _, name := range root.Get("names").Array() {
		table.appendName(name.String())
	}

	lines, err := DecodeMappings(root.Get("mappings").String())
	if err != nil {
		return nil, err
	}
	if err := checkIndices(lines, len(table.sources), len(table.names)); err != nil {
		return nil, err
	}
	table.lines = lines

	return table, nil
}

// checkIndices rejects mappings that point past the sources or names arrays.
func checkIndices(lines [][]Mapping, sources, names int) error {
	for line, row := range lines {
		for _, mapping := range row {
			if mapping.HasSource && int(mapping.SourceIndex) >= sources {
				return fmt.Errorf("%w: line %d column %d: source index %d with %d sources",
					ErrInvalidMappings, line, mapping.GeneratedColumn, mapping.SourceIndex, sources)
			}
			if mapping.HasName && int(mapping.NameIndex) >= names {
				return fmt.Errorf("%w: line %d column %d: name index %d with %d names",
					ErrInvalidMappings, line, mapping.GeneratedColumn, mapping.NameIndex, names)
			}
		}
	}
	return nil
}

// appendSource appends path without deduplication so that indices used by a
// decoded mappings string stay valid. The lookup keeps the first occurrence.
func (t *Table) appendSource(path string) {
	t.sources = append(t.sources, path)
	t.contents = append(t.contents, nil)
	if _, ok := t.sourceIndex[path]; !ok {
		t.sourceIndex[path] = len(t.sources) - 1
	}
}

func (t *Table) appendName(name string) {
	t.names = append(t.names, name)
	if _, ok := t.nameIndex[name]; !ok {
		t.nameIndex[name] = len(t.names) - 1
	}
}

// UnmarshalJSON replaces the table with the parsed map.
func (t *Table) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// MarshalJSON renders the table as a version 3 source map. Keys are emitted
// in the conventional order: version, file, sourceRoot, sources,
// sourcesContent, names, mappings.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	set := func(path string, value any) error {
		var err error
		out, err = sjson.SetBytes(out, path, value)
		if err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
		return nil
	}

	if err := set("version", Version); err != nil {
		return nil, err
	}
	if t.File != "" {
		if err := set("file", t.File); err != nil {
			return nil, err
		}
	}
	if t.SourceRoot != "" {
		if err := set("sourceRoot", t.SourceRoot); err != nil {
			return nil, err
		}
	}
	if err := set("sources", nonNil(t.sources)); err != nil {
		return nil, err
	}
	if t.hasContent() {
		if err := set("sourcesContent", t.contents); err != nil {
			return nil, err
		}
	}
	if err := set("names", nonNil(t.names)); err != nil {
		return nil, err
	}
	if err := set("mappings", t.EncodeMappings()); err != nil {
		return nil, err
	}

	return out, nil
}

// Indent pretty-prints a marshaled map.
func Indent(data []byte) []byte {
	return pretty.PrettyOptions(data, &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: false,
	})
}

func (t *Table) hasContent() bool {
	for _, content := range t.contents {
		if content != nil {
			return true
		}
	}
	return false
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
