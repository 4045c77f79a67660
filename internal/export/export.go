// Package export writes rendered plans to disk. Writes to the same path are
// serialized with an advisory lock kept in the system temp directory, and
// each write replaces the file atomically.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when the lock for a target cannot be taken in time.
var ErrLockTimeout = errors.New("timed out waiting for export lock")

// lockRetryDelay is the polling interval while waiting for a held lock.
const lockRetryDelay = 50 * time.Millisecond

// LockPath returns the lock file used for target. It lives in the temp
// directory, named after the absolute target path, so nothing is left
// beside the exported file.
func LockPath(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = filepath.Clean(target)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "pathfinder-export-"+hex.EncodeToString(sum[:8])+".lock")
}

// WriteFile replaces target with data while holding the target's lock.
// It waits for the lock until ctx is done.
func WriteFile(ctx context.Context, target string, data []byte) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(LockPath(target))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s", ErrLockTimeout, target)
		}
		return fmt.Errorf("failed to acquire lock on %s: %w", target, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLockTimeout, target)
	}
	defer lock.Unlock()

	return replace(target, data)
}

// replace writes data to a temp file in target's directory and renames it
// over target, so readers see either the old or the new content.
func replace(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", target, err)
	}

	committed = true
	return nil
}
