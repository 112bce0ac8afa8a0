package sourcemap

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by table construction and decoding.
var (
	// ErrUnsupportedVersion is returned for a map whose version is not 3.
	ErrUnsupportedVersion = errors.New("unsupported source map version")

	// ErrIndexedMap is returned for a sectioned (index) map.
	ErrIndexedMap = errors.New("indexed source maps are not supported")

	// ErrInvalidJSON is returned when the map is not a JSON object.
	ErrInvalidJSON = errors.New("source map is not a valid JSON object")

	// ErrInvalidMappings is returned for a malformed mappings string.
	ErrInvalidMappings = errors.New("invalid mappings")

	// ErrOutOfRange is returned when a line, column or index does not
	// fit an unsigned 32-bit field.
	ErrOutOfRange = errors.New("position out of range")
)

// DecodeError describes a malformed segment in a mappings string.
type DecodeError struct {
	Offset  int
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid mappings at offset %d: %s", e.Offset, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidMappings.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidMappings
}
