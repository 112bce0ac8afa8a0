package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gosmap/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "cache.dir").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownLogLevels lists valid log levels.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.CommentStyle != "" && !cfg.CommentStyle.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "comment_style",
			Value:   cfg.CommentStyle,
			Message: fmt.Sprintf("invalid comment style %q; must be one of: auto, line, block", cfg.CommentStyle),
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	if strings.Trim(cfg.IndentUnit, " \t") != "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "indent_unit",
			Value:   cfg.IndentUnit,
			Message: "indent unit contains characters other than spaces and tabs",
		})
	}

	return result
}

// unknownFieldWarnings turns unknown keys from a config file into warnings.
func unknownFieldWarnings(path string, keys []string) []ValidationError {
	warnings := make([]ValidationError, 0, len(keys))
	for _, key := range keys {
		warnings = append(warnings, ValidationError{
			Field:    key,
			Message:  "unknown field; it will be ignored",
			FilePath: path,
		})
	}
	return warnings
}
