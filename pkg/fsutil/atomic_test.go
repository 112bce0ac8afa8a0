package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.js.map")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("{}"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.js")
		writeFile(t, path, "old")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0o600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "out.js")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0))
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "out.js")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, written)
}

func TestBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "in.js")
	writeFile(t, path, "original")

	created, err := fsutil.CreateBackup(ctx, path)
	require.NoError(t, err)
	assert.True(t, created)

	writeFile(t, path, "edited")
	created, err = fsutil.CreateBackup(ctx, path)
	require.NoError(t, err)
	assert.False(t, created, "existing backup is kept")

	restored, err := fsutil.RestoreBackup(ctx, path)
	require.NoError(t, err)
	assert.True(t, restored)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	restored, err = fsutil.RestoreBackup(ctx, filepath.Join(t.TempDir(), "none.js"))
	require.NoError(t, err)
	assert.False(t, restored)
}
