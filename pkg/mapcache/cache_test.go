package mapcache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/fsutil"
	"github.com/yaklabco/gosmap/pkg/mapcache"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

const sampleMap = `{
	"version": 3,
	"file": "out.js",
	"sources": ["a.js", "b.js"],
	"sourcesContent": ["var a;", null],
	"names": ["a"],
	"mappings": "AAAAA,CAAC;;ACCA"
}`

func writeMap(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "out.js.map")
	require.NoError(t, os.WriteFile(path, []byte(sampleMap), 0o600))
	return path
}

func TestLoadPopulatesCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache, err := mapcache.Open(t.TempDir())
	require.NoError(t, err)
	path := writeMap(t, t.TempDir())

	first, err := cache.Load(ctx, path)
	require.NoError(t, err)

	_, stamp, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)
	cached, ok, err := cache.Get(stamp.Key())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, first.EncodeMappings(), cached.EncodeMappings())
	assert.Equal(t, first.Sources(), cached.Sources())
	assert.Equal(t, first.Names(), cached.Names())
	assert.Equal(t, "out.js", cached.File)

	content, ok := cached.SourceContent("a.js")
	assert.True(t, ok)
	assert.Equal(t, "var a;", content)
	_, ok = cached.SourceContent("b.js")
	assert.False(t, ok)

	loc, ok := cached.GetSource(2, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "b.js", loc.Source)
	assert.Equal(t, 1, loc.Line)
}

func TestLoadInvalidMap(t *testing.T) {
	t.Parallel()

	cache, err := mapcache.Open(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.map")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 2}`), 0o600))

	_, err = cache.Load(context.Background(), path)
	require.ErrorIs(t, err, sourcemap.ErrUnsupportedVersion)
}

func TestNilCache(t *testing.T) {
	t.Parallel()

	var cache *mapcache.Cache
	table, err := cache.Load(context.Background(), writeMap(t, t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "b.js"}, table.Sources())
	require.NoError(t, cache.Clear())
}

func TestClear(t *testing.T) {
	t.Parallel()

	cache, err := mapcache.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Put(context.Background(), "k", sourcemap.New()))

	_, ok, err := cache.Get("k")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, cache.Clear())
	_, ok, err = cache.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
