// Package fsutil reads inputs and writes outputs for gosmap: atomic writes,
// content stamps for detecting concurrent changes, and backups for in-place
// edits.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates a file changed after it was read.
	ErrModified = errors.New("file modified since it was read")
)

// Stamp records the state of a file when it was read.
type Stamp struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 digest of the content.
	Hash [32]byte
}

// Key returns the hex form of the content hash.
func (s *Stamp) Key() string {
	return hex.EncodeToString(s.Hash[:])
}

// ReadFile reads path and stamps it.
func ReadFile(ctx context.Context, path string) ([]byte, *Stamp, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Stamp{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Verify returns ErrModified if the stamped file has changed or vanished
// since it was read. Mod time and size are compared first; the content is
// hashed only when they match.
func (s *Stamp) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("verify %s: %w", s.Path, err)
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s was removed", ErrModified, s.Path)
		}
		return fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return fmt.Errorf("%w: %s", ErrModified, s.Path)
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.Path, err)
	}
	if sha256.Sum256(content) != s.Hash {
		return fmt.Errorf("%w: %s", ErrModified, s.Path)
	}
	return nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
