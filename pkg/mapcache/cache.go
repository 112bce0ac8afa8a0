// Package mapcache keeps decoded source maps on disk, keyed by the hash of
// the map file, so repeated runs over the same inputs skip JSON and VLQ
// decoding.
package mapcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/gosmap/pkg/fsutil"
	"github.com/yaklabco/gosmap/pkg/sourcemap"
)

// schemaVersion changes whenever the payload layout does.
const schemaVersion uint16 = 1

// payload is the on-disk entry.
type payload struct {
	Schema uint16             `msgpack:"schema"`
	Table  sourcemap.Snapshot `msgpack:"table"`
}

// Cache is a directory of msgpack-encoded tables. A nil *Cache is valid and
// caches nothing. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it if needed. An empty dir
// selects gosmap under the user cache directory.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache directory: %w", err)
		}
		dir = filepath.Join(base, "gosmap")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "maps", key+".mp")
}

// Load reads and parses the source map at path, going through the cache
// when one is configured.
func (c *Cache) Load(ctx context.Context, path string) (*sourcemap.Table, error) {
	data, stamp, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	key := stamp.Key()
	if table, ok, err := c.Get(key); err == nil && ok {
		return table, nil
	}

	table, err := sourcemap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Put(ctx, key, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Get returns the table stored under key. Entries written with another
// schema are reported as missing.
func (c *Cache) Get(key string) (*sourcemap.Table, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var entry payload
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if entry.Schema != schemaVersion {
		return nil, false, nil
	}
	return sourcemap.Restore(entry.Table), true, nil
}

// Put stores table under key.
func (c *Cache) Put(ctx context.Context, key string, table *sourcemap.Table) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msgpack.Marshal(&payload{Schema: schemaVersion, Table: table.Snapshot()})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	return fsutil.WriteAtomic(ctx, path, data, 0)
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "maps")); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
