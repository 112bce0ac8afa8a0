package sourcemap

import (
	"regexp"
	"strings"
)

// CommentStyle selects how a sourceMappingURL comment is written.
type CommentStyle int

const (
	// LineComment writes "//# sourceMappingURL=...".
	LineComment CommentStyle = iota

	// BlockComment writes "/*# sourceMappingURL=... */", as CSS requires.
	BlockComment
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	lineURLPattern  = regexp.MustCompile(`(?:^|\n)[ \t]*//[#@][ \t]*sourceMappingURL=([^\r\n]*?)[ \t]*[\r\n]*$`)
	blockURLPattern = regexp.MustCompile(`(?:^|\n)[ \t]*/\*[#@][ \t]*sourceMappingURL=([^\r\n]*?)[ \t]*\*/[ \t]*[\r\n]*$`)
)

//nolint:gochecknoglobals // Read-only replacer.
var lineBreakEscaper = strings.NewReplacer("\r", "%0D", "\n", "%0A")

func escapeBlockURL(url string) string {
	return strings.ReplaceAll(url, "*/", "*%2F")
}

// findURLComment locates a trailing sourceMappingURL comment and returns the
// submatch indices: the comment span followed by the URL span.
func findURLComment(text string) []int {
	if loc := lineURLPattern.FindStringSubmatchIndex(text); loc != nil {
		return loc
	}
	return blockURLPattern.FindStringSubmatchIndex(text)
}

// SourceMappingURL returns the URL of the trailing sourceMappingURL comment
// of text.
func SourceMappingURL(text string) (string, bool) {
	loc := findURLComment(text)
	if loc == nil {
		return "", false
	}
	return text[loc[2]:loc[3]], true
}

// SetSourceMappingURL points the trailing sourceMappingURL comment of text at
// url.
//
// An existing comment is updated in place and keeps its style; otherwise a
// new comment in the given style is appended. An empty url removes the
// comment. Applying the same url twice yields the same text. Line breaks
// in url, and "*/" in a block comment, are percent-encoded so the comment
// stays on one line and stays closed.
func SetSourceMappingURL(text, url string, style CommentStyle) string {
	url = lineBreakEscaper.Replace(url)
	if loc := findURLComment(text); loc != nil {
		if url == "" {
			return text[:loc[0]]
		}
		if strings.HasPrefix(strings.TrimLeft(text[loc[0]:loc[2]], " \t\r\n"), "/*") {
			url = escapeBlockURL(url)
		}
		return text[:loc[2]] + url + text[loc[3]:]
	}

	if url == "" {
		return text
	}

	comment := "//# sourceMappingURL=" + url
	if style == BlockComment {
		comment = "/*# sourceMappingURL=" + escapeBlockURL(url) + " */"
	}
	if text == "" {
		return comment
	}
	return text + "\n" + comment
}
