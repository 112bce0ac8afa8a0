// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"

	// Source map fields.
	FieldFile     = "file"
	FieldSources  = "sources"
	FieldNames    = "names"
	FieldMappings = "mappings"
	FieldUpstream = "upstream"
	FieldCache    = "cache"
	FieldCacheHit = "cache_hit"

	// Edit fields.
	FieldEdits   = "edits"
	FieldSearch  = "search"
	FieldStyle   = "comment_style"
	FieldWritten = "written"
	FieldBackup  = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
