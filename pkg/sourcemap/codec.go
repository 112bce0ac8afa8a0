package sourcemap

import (
	"strings"

	"fortio.org/safecast"
)

// EncodeMappings renders the mappings of the table in the standard
// semicolon/comma separated Base64 VLQ form.
//
// Every field is a delta against the previous occurrence of that field in
// the stream, except the generated column, which restarts at zero on each
// line.
func (t *Table) EncodeMappings() string {
	return encodeLines(t.lines)
}

func encodeLines(lines [][]Mapping) string {
	var (
		buf        []byte
		prevSource int
		prevLine   int
		prevColumn int
		prevName   int
	)

	for lineIdx, row := range lines {
		if lineIdx > 0 {
			buf = append(buf, ';')
		}
		prevGenerated := 0
		for i, mapping := range row {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = appendVLQ(buf, int(mapping.GeneratedColumn)-prevGenerated)
			prevGenerated = int(mapping.GeneratedColumn)
			if !mapping.HasSource {
				continue
			}

			buf = appendVLQ(buf, int(mapping.SourceIndex)-prevSource)
			prevSource = int(mapping.SourceIndex)
			buf = appendVLQ(buf, int(mapping.SourceLine)-prevLine)
			prevLine = int(mapping.SourceLine)
			buf = appendVLQ(buf, int(mapping.SourceColumn)-prevColumn)
			prevColumn = int(mapping.SourceColumn)

			if mapping.HasName {
				buf = appendVLQ(buf, int(mapping.NameIndex)-prevName)
				prevName = int(mapping.NameIndex)
			}
		}
	}

	return string(buf)
}

// decodeState carries the running field values across segments.
type decodeState struct {
	fields [5]int
}

// DecodeMappings parses a mappings string into per-line mapping lists. Each
// ';' starts a new line, so consecutive separators yield empty lines.
func DecodeMappings(encoded string) ([][]Mapping, error) {
	if encoded == "" {
		return nil, nil
	}

	lines := make([][]Mapping, 0, strings.Count(encoded, ";")+1)
	var (
		row   []Mapping
		state decodeState
	)

	pos := 0
	generated := 0
	for pos <= len(encoded) {
		if pos == len(encoded) || encoded[pos] == ';' {
			lines = append(lines, row)
			row = nil
			generated = 0
			pos++
			continue
		}
		if encoded[pos] == ',' {
			pos++
			continue
		}

		mapping, next, err := state.segment(encoded, pos, generated)
		if err != nil {
			return nil, err
		}
		generated = int(mapping.GeneratedColumn)
		row = append(row, mapping)
		pos = next
	}

	return lines, nil
}

// segment decodes one segment of 1, 4 or 5 fields starting at pos.
func (s *decodeState) segment(encoded string, pos, generated int) (Mapping, int, error) {
	start := pos
	var values [5]int
	count := 0
	for pos < len(encoded) && encoded[pos] != ',' && encoded[pos] != ';' {
		if count == len(values) {
			return Mapping{}, pos, &DecodeError{Offset: start, Message: "segment has more than 5 fields"}
		}
		value, next, err := decodeVLQ(encoded, pos)
		if err != nil {
			return Mapping{}, next, err
		}
		values[count] = value
		count++
		pos = next
	}

	if count != 1 && count != 4 && count != 5 {
		return Mapping{}, pos, &DecodeError{Offset: start, Message: "segment must have 1, 4 or 5 fields"}
	}

	generated += values[0]
	if generated < 0 {
		return Mapping{}, pos, &DecodeError{Offset: start, Message: "negative generated column"}
	}
	column, err := safecast.Conv[uint32](generated)
	if err != nil {
		return Mapping{}, pos, &DecodeError{Offset: start, Message: "generated column overflows 32 bits"}
	}
	mapping := Mapping{GeneratedColumn: column}
	if count == 1 {
		return mapping, pos, nil
	}

	var fields [5]uint32
	for i := 1; i < count; i++ {
		s.fields[i] += values[i]
		if s.fields[i] < 0 {
			return Mapping{}, pos, &DecodeError{Offset: start, Message: "negative field value"}
		}
		fields[i], err = safecast.Conv[uint32](s.fields[i])
		if err != nil {
			return Mapping{}, pos, &DecodeError{Offset: start, Message: "field value overflows 32 bits"}
		}
	}
	mapping.HasSource = true
	mapping.SourceIndex = fields[1]
	mapping.SourceLine = fields[2]
	mapping.SourceColumn = fields[3]
	if count == 5 {
		mapping.HasName = true
		mapping.NameIndex = fields[4]
	}

	return mapping, pos, nil
}
