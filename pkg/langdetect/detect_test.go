package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gosmap/pkg/langdetect"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{name: "javascript by extension", path: "dist/app.js", expected: "JavaScript"},
		{name: "css by extension", path: "dist/site.css", expected: "CSS"},
		{name: "scss by extension", path: "src/site.scss", expected: "SCSS"},
		{name: "shebang", content: "#!/usr/bin/env node\nconsole.log(1)\n", expected: "JavaScript"},
		{name: "nothing to go on", expected: langdetect.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Language(tt.path, []byte(tt.content)))
		})
	}
}

func TestCommentStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected sourcemap.CommentStyle
	}{
		{name: "javascript", path: "out.js", expected: sourcemap.LineComment},
		{name: "css", path: "out.css", expected: sourcemap.BlockComment},
		{name: "less", path: "out.less", expected: sourcemap.BlockComment},
		{name: "unknown", path: "", expected: sourcemap.LineComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.CommentStyle(tt.path, nil))
		})
	}
}

func TestParseCommentStyle(t *testing.T) {
	t.Parallel()

	style, ok := langdetect.ParseCommentStyle("Block")
	assert.True(t, ok)
	assert.Equal(t, sourcemap.BlockComment, style)

	style, ok = langdetect.ParseCommentStyle("line")
	assert.True(t, ok)
	assert.Equal(t, sourcemap.LineComment, style)

	_, ok = langdetect.ParseCommentStyle("auto")
	assert.False(t, ok)
}
