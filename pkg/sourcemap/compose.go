package sourcemap

// ApplySourceMap composes the table with upstream, the map of the pass that
// produced one of this table's sources.
//
// The source named by upstream.File is replaced by upstream's own sources:
// every mapping that pointed into it is redirected through upstream. When
// upstream has no location for such a mapping, the mapping keeps its
// generated position but loses its source. If upstream.File is not one of
// the table's sources the call does nothing.
func (t *Table) ApplySourceMap(upstream *Table) {
	removed, ok := t.sourceIndex[upstream.File]
	if !ok {
		return
	}
	t.removeSource(removed)

	sourceMap := make([]uint32, len(upstream.sources))
	for idx, path := range upstream.sources {
		local := t.AddSource(path)
		sourceMap[idx] = uint32(local)
		if content := upstream.contents[idx]; content != nil && t.contents[local] == nil {
			t.contents[local] = content
		}
	}
	nameMap := make([]uint32, len(upstream.names))
	for idx, name := range upstream.names {
		nameMap[idx] = uint32(t.AddName(name))
	}

	target := uint32(removed)
	for _, row := range t.lines {
		for i := range row {
			mapping := &row[i]
			if !mapping.HasSource {
				continue
			}
			switch {
			case mapping.SourceIndex == target:
				redirect(mapping, upstream, sourceMap, nameMap)
			case mapping.SourceIndex > target:
				mapping.SourceIndex--
			}
		}
	}
}

// redirect rewrites mapping to the location upstream gives for its source
// position, or strips it down to a bare generated position.
func redirect(mapping *Mapping, upstream *Table, sourceMap, nameMap []uint32) {
	loc, ok := upstream.GetSource(int(mapping.SourceLine), int(mapping.SourceColumn), AdjustColumn|AdjustLine)
	if !ok || loc.SourceIndex >= len(sourceMap) || loc.Line < 0 || loc.Column < 0 {
		*mapping = Mapping{GeneratedColumn: mapping.GeneratedColumn}
		return
	}

	mapping.SourceIndex = sourceMap[loc.SourceIndex]
	mapping.SourceLine = uint32(loc.Line)
	mapping.SourceColumn = uint32(loc.Column)
	if loc.NameIndex >= 0 && loc.NameIndex < len(nameMap) {
		mapping.NameIndex = nameMap[loc.NameIndex]
		mapping.HasName = true
	}
}

// removeSource drops one source and its content, shifting later indices
// down by one. Mapping indices are left to the caller.
func (t *Table) removeSource(idx int) {
	path := t.sources[idx]
	t.sources = append(t.sources[:idx], t.sources[idx+1:]...)
	t.contents = append(t.contents[:idx], t.contents[idx+1:]...)

	delete(t.sourceIndex, path)
	for i := idx; i < len(t.sources); i++ {
		if t.sourceIndex[t.sources[i]] == i+1 {
			t.sourceIndex[t.sources[i]] = i
		}
	}
}
