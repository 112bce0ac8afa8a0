package sourcemap

import "math"

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

//nolint:gochecknoglobals // Read-only lookup table.
var base64Values = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := range len(base64Alphabet) {
		table[base64Alphabet[i]] = int8(i)
	}
	return table
}()

const (
	vlqShift        = 5
	vlqMask         = 1<<vlqShift - 1
	vlqContinuation = 1 << vlqShift
)

// appendVLQ appends the Base64 VLQ form of value to dst.
//
// The value is zig-zag folded so the sign lands in the lowest bit, then
// emitted five bits at a time, least significant group first. Bit 5 of each
// digit marks that more digits follow.
func appendVLQ(dst []byte, value int) []byte {
	var vlq int
	if value < 0 {
		vlq = (-value << 1) | 1
	} else {
		vlq = value << 1
	}

	for {
		digit := vlq & vlqMask
		vlq >>= vlqShift
		if vlq != 0 {
			digit |= vlqContinuation
		}
		dst = append(dst, base64Alphabet[digit])
		if vlq == 0 {
			return dst
		}
	}
}

// decodeVLQ reads one value starting at pos and returns it together with the
// offset just past it.
func decodeVLQ(encoded string, pos int) (int, int, error) {
	shift := 0
	vlq := 0

	for {
		if pos >= len(encoded) {
			return 0, pos, &DecodeError{Offset: pos, Message: "unterminated value"}
		}
		digit := base64Values[encoded[pos]]
		if digit < 0 {
			return 0, pos, &DecodeError{Offset: pos, Message: "character outside the base64 alphabet"}
		}
		if shift > 30 {
			return 0, pos, &DecodeError{Offset: pos, Message: "value overflows 32 bits"}
		}

		vlq |= int(digit&vlqMask) << shift
		pos++
		shift += vlqShift

		if digit&vlqContinuation == 0 {
			break
		}
	}

	value := vlq >> 1
	if uint64(value) > math.MaxUint32 {
		return 0, pos, &DecodeError{Offset: pos, Message: "value overflows 32 bits"}
	}
	if vlq&1 != 0 {
		value = -value
	}
	return value, pos, nil
}
