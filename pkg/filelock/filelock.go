// Package filelock coordinates rewrites of source files between sharpalign
// processes. Writers that meet on a file's sidecar lock take turns, and every
// rewrite replaces the file atomically, so a reader never sees a torn file.
// The sidecar is removed after each write, which makes the lock advisory: a
// writer arriving after removal can run alongside one still blocked on the
// old sidecar, and the last rename wins.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a target path to name its lock file.
const LockSuffix = ".lock"

// FileLock wraps a flock lock file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock acquires the lock if nobody else holds it.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite replaces path with data through a temp file in the same
// directory and a rename, so readers see either the old or the new content.
// The new file gets mode perm.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, ".sharpalign-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}

// LockAndWrite rewrites an existing file while holding path+".lock", waiting
// for another holder if needed. It keeps the file's permission bits and
// removes the lock file afterwards.
func LockAndWrite(path string, data []byte) error {
	_, err := lockAndWrite(path, data, func(l *FileLock) (bool, error) {
		return true, l.Lock()
	})
	return err
}

// TryLockAndWrite is LockAndWrite without waiting: when another process holds
// the lock it writes nothing and reports false.
func TryLockAndWrite(path string, data []byte) (bool, error) {
	return lockAndWrite(path, data, (*FileLock).TryLock)
}

func lockAndWrite(path string, data []byte, acquire func(*FileLock) (bool, error)) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	lockPath := path + LockSuffix
	lock := NewFileLock(lockPath)
	acquired, err := acquire(lock)
	if err != nil || !acquired {
		return false, err
	}
	defer func() {
		lock.Unlock()
		os.Remove(lockPath)
	}()

	return true, AtomicWrite(path, data, info.Mode().Perm())
}
