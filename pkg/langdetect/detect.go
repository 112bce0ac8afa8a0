// Package langdetect identifies the language of generated files so that
// sourceMappingURL comments are written in a syntax the file accepts.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

// Unknown is returned when no language can be determined.
const Unknown = "text"

// candidates limits the classifier to languages that are commonly shipped
// with source maps.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"JavaScript", "TypeScript", "CoffeeScript", "CSS", "SCSS", "Less",
	"Sass", "Stylus", "HTML", "JSON",
}

// blockOnly lists languages without line comments.
//
//nolint:gochecknoglobals // Read-only lookup table.
var blockOnly = map[string]bool{
	"CSS":  true,
	"SCSS": true,
	"Less": true,
	"Sass": true,
}

// Language returns the go-enry name of the language of a file. The path is
// consulted first; content is classified only when the path is ambiguous or
// unknown. Unknown is returned when neither helps.
func Language(path string, content []byte) string {
	var byPath []string
	if path != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
			return lang
		}
		if lang, safe := enry.GetLanguageByFilename(path); safe && lang != "" {
			return lang
		}
		byPath = enry.GetLanguagesByExtension(path, content, nil)
	}

	if len(content) == 0 {
		return Unknown
	}
	if len(byPath) > 1 {
		if lang, _ := enry.GetLanguageByClassifier(content, byPath); lang != "" {
			return lang
		}
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return lang
	}
	return Unknown
}

// CommentStyle returns the comment syntax for a sourceMappingURL in a file.
// Stylesheets take block comments; everything else takes line comments.
func CommentStyle(path string, content []byte) sourcemap.CommentStyle {
	if blockOnly[Language(path, content)] {
		return sourcemap.BlockComment
	}
	return sourcemap.LineComment
}

// ParseCommentStyle maps a configured style name to a comment style. Names
// other than "line" and "block" select auto detection.
func ParseCommentStyle(name string) (sourcemap.CommentStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "line":
		return sourcemap.LineComment, true
	case "block":
		return sourcemap.BlockComment, true
	default:
		return sourcemap.LineComment, false
	}
}
