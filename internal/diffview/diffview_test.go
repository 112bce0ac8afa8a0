package diffview_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/internal/diffview"
	"github.com/yaklabco/gosmap/internal/ui/pretty"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	t.Run("identical content", func(t *testing.T) {
		t.Parallel()

		diff, err := diffview.Unified("a.js", "x\ny\n", "x\ny\n", 0)
		require.NoError(t, err)
		assert.False(t, diff.HasChanges())
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		diff, err := diffview.Unified("a.js", "one\ntwo\nthree", "one\n2\nthree", 0)
		require.NoError(t, err)

		assert.True(t, diff.HasChanges())
		assert.Equal(t, 1, diff.Additions)
		assert.Equal(t, 1, diff.Deletions)
		assert.Contains(t, diff.Body, "--- a/a.js")
		assert.Contains(t, diff.Body, "+++ b/a.js")
		assert.Contains(t, diff.Body, "-two\n")
		assert.Contains(t, diff.Body, "+2\n")
	})

	t.Run("new file", func(t *testing.T) {
		t.Parallel()

		diff, err := diffview.Unified("a.js", "", "a\nb\n", 0)
		require.NoError(t, err)
		assert.Equal(t, 2, diff.Additions)
		assert.Zero(t, diff.Deletions)
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	diff, err := diffview.Unified("a.js", "a\nb\n", "a\nc\n", 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, diffview.Render(&buf, diff, pretty.NewStyles(false)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "diff --git a/a.js b/a.js", lines[0])
	assert.Contains(t, lines, "-b")
	assert.Contains(t, lines, "+c")
	assert.Equal(t, "1 insertions(+), 1 deletions(-)", lines[len(lines)-1])

	buf.Reset()
	empty, err := diffview.Unified("a.js", "a", "a", 0)
	require.NoError(t, err)
	require.NoError(t, diffview.Render(&buf, empty, pretty.NewStyles(false)))
	assert.Empty(t, buf.String())
}
