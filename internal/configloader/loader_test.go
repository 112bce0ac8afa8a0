package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/config"
)

func noEnv(string) string { return "" }

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		Getenv:           noEnv,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	path := writeConfig(t, root, ".gosmap.yml", "pretty: true\nindent_unit: \"  \"\nsurprise: 1\n")

	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.True(t, result.Config.PrettyEnabled())
	assert.Equal(t, "  ", result.Config.IndentUnit)
	assert.True(t, result.Config.SourcesContentEnabled(), "unset fields keep defaults")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "surprise")
}

func TestLoadTOMLProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "gosmap.toml", "line_only = true\n[cache]\nenabled = true\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.True(t, result.Config.LineOnlyEnabled())
	assert.True(t, result.Config.CacheEnabled())
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".gosmap.yml", "pretty: true\nline_only: true\nlog_level: warn\n")
	explicit := writeConfig(t, dir, "explicit.yml", "log_level: error\ncomment_style: line\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.Getenv = func(name string) string {
		switch name {
		case "GOSMAP_COMMENT_STYLE":
			return "block"
		case "GOSMAP_SOURCES_CONTENT":
			return "false"
		}
		return ""
	}
	opts.CLIConfig = &config.Config{SourcesContent: config.Bool(true)}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{explicit}, result.LoadedFrom, "explicit config replaces project discovery")
	assert.False(t, result.Config.PrettyEnabled())
	assert.Equal(t, "error", result.Config.LogLevel)
	assert.Equal(t, config.CommentStyleBlock, result.Config.CommentStyle, "environment beats files")
	assert.True(t, result.Config.SourcesContentEnabled(), "flags beat environment")
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "invalid comment style", content: "comment_style: hash\n"},
		{name: "invalid log level", content: "log_level: loud\n"},
		{name: "malformed yaml", content: "pretty: [\n"},
		{name: "invalid env boolean", env: map[string]string{"GOSMAP_PRETTY": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.content != "" {
				writeConfig(t, dir, ".gosmap.yml", tt.content)
			}
			opts := isolated(dir)
			opts.Getenv = func(name string) string { return tt.env[name] }

			_, err := Load(context.Background(), opts)
			require.Error(t, err)
		})
	}
}

func TestMergeExplicitFalse(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Pretty = config.Bool(true)

	merged := MergeAll(base, &config.Config{Pretty: config.Bool(false)}, &config.Config{IndentUnit: "  "})
	assert.False(t, merged.PrettyEnabled())
	assert.Equal(t, "  ", merged.IndentUnit)
	assert.True(t, base.PrettyEnabled(), "inputs are not modified")
}

func TestValidateWarnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.IndentUnit = "->"

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.True(t, result.HasWarnings())
	assert.Equal(t, []string{"warning: indent_unit: indent unit contains characters other than spaces and tabs"},
		result.AllMessages())
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "GOSMAP_INDENT_UNIT")
	assert.Contains(t, vars, "GOSMAP_CACHE_ENABLED")
	assert.IsNonDecreasing(t, vars)
}
