package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stamps content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, "var a;")

		content, stamp, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "var a;", string(content))
		assert.Equal(t, int64(6), stamp.Size)
		assert.Len(t, stamp.Key(), 64)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.js"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fsutil.ReadFile(canceled, "whatever")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStampVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, "one")
		_, stamp, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, stamp.Verify(ctx))
	})

	t.Run("rewritten with same size", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, "one")
		_, stamp, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		writeFile(t, path, "two")
		require.NoError(t, os.Chtimes(path, stamp.ModTime, stamp.ModTime))

		require.ErrorIs(t, stamp.Verify(ctx), fsutil.ErrModified)
	})

	t.Run("touched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, "one")
		_, stamp, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := stamp.ModTime.Add(time.Minute)
		require.NoError(t, os.Chtimes(path, later, later))

		require.ErrorIs(t, stamp.Verify(ctx), fsutil.ErrModified)
	})

	t.Run("removed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, "one")
		_, stamp, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))
		require.ErrorIs(t, stamp.Verify(ctx), fsutil.ErrModified)
	})
}
