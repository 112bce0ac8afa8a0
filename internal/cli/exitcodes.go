package cli

import (
	"errors"

	"github.com/yaklabco/gosmap/internal/configloader"
	"github.com/yaklabco/gosmap/pkg/edit"
	"github.com/yaklabco/gosmap/pkg/fsutil"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

// Exit codes for gosmap.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoMapping indicates a lookup that found no mapping.
	ExitNoMapping = 1

	// ExitInvalidMap indicates a source map that could not be parsed.
	ExitInvalidMap = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrNoMapping is returned when a lookup finds nothing. It only selects
	// the exit code; the miss has already been reported.
	ErrNoMapping = errors.New("no mapping found")

	// ErrInvalidUsage marks bad arguments or flags.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded or validated.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError
	var conflict *edit.ConflictError
	var invalidRange *edit.RangeError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoMapping):
		return ExitNoMapping
	case errors.Is(err, ErrInvalidUsage),
		errors.As(err, &conflict),
		errors.As(err, &invalidRange):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, sourcemap.ErrInvalidJSON),
		errors.Is(err, sourcemap.ErrInvalidMappings),
		errors.Is(err, sourcemap.ErrUnsupportedVersion),
		errors.Is(err, sourcemap.ErrIndexedMap):
		return ExitInvalidMap
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
