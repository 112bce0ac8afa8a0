package sourcemap

// Snapshot is a plain-data copy of a table, suitable for binary encoders.
type Snapshot struct {
	File           string      `msgpack:"file"`
	SourceRoot     string      `msgpack:"root"`
	Sources        []string    `msgpack:"sources"`
	SourcesContent []*string   `msgpack:"contents"`
	Names          []string    `msgpack:"names"`
	Lines          [][]Mapping `msgpack:"lines"`
}

// Snapshot copies the table's state.
func (t *Table) Snapshot() Snapshot {
	lines := make([][]Mapping, len(t.lines))
	for i, row := range t.lines {
		if row != nil {
			lines[i] = append([]Mapping(nil), row...)
		}
	}
	return Snapshot{
		File:           t.File,
		SourceRoot:     t.SourceRoot,
		Sources:        append([]string{}, t.sources...),
		SourcesContent: append([]*string(nil), t.contents...),
		Names:          append([]string{}, t.names...),
		Lines:          lines,
	}
}

// Restore rebuilds a table from a snapshot.
func Restore(snap Snapshot) *Table {
	table := New()
	table.File = snap.File
	table.SourceRoot = snap.SourceRoot
	for _, source := range snap.Sources {
		table.appendSource(source)
	}
	for idx, content := range snap.SourcesContent {
		if idx < len(table.contents) {
			table.contents[idx] = content
		}
	}
	for _, name := range snap.Names {
		table.appendName(name)
	}
	table.lines = snap.Lines
	return table
}
