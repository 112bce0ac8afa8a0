package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/internal/cli"
)

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"edit", "--help"})

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "gosmap edit FILE")
	assert.Contains(t, help, "Examples:")
	assert.Contains(t, help, "--input-map")
	assert.Contains(t, help, "Global Flags:")
	assert.Contains(t, help, "--no-cache")
}

func TestRootHelpListsCommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	for _, name := range []string{"inspect", "lookup", "compose", "edit", "restore", "cache", "config", "init", "version"} {
		assert.Contains(t, out.String(), name)
	}
}
