package pretty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/internal/ui/pretty"
)

func TestNewStylesColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)
	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Source.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")
}

func TestTerminalWidthDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, pretty.TerminalWidth(&bytes.Buffer{}))
}
