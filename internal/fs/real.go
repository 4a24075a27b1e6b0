package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// Real implements [FS] using the real filesystem.
//
// ReadFile and MkdirAll are passthroughs to the [os] package. WriteFileAtomic
// goes through natefinch/atomic and Lock uses flock(2).
type Real struct {
	// LockTimeout bounds how long Lock waits. Zero means [DefaultLockTimeout].
	LockTimeout time.Duration
}

// DefaultLockTimeout is how long [Real.Lock] waits before giving up.
const DefaultLockTimeout = 2 * time.Second

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{}
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (r *Real) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	err := atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return err
	}

	// atomic.WriteFile keeps the temp file's mode for new files
	if perm != 0 {
		return os.Chmod(path, perm)
	}

	return nil
}

// A passthrough wrapper for [os.MkdirAll].
func (r *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// --- Locking ---

const (
	lockPerms    = 0o644
	dirPerms     = 0o755
	locksDirName = ".locks"
	lockRetry    = 10 * time.Millisecond
)

// realLock holds an exclusive file lock.
type realLock struct {
	path string
	file *os.File
}

// Close releases the lock and removes the lock file.
// Order matters: remove while holding lock, then unlock, then close.
func (l *realLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = os.Remove(l.path)
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil

	return err
}

// Lock takes an exclusive lock on <dir>/.locks/<base>.lock.
//
// Lock files live in a subdirectory so the locked file's own directory only
// ever contains data files. The inode is re-checked after acquiring because a
// previous holder removes the lock file on release.
func (r *Real) Lock(path string) (Locker, error) {
	timeout := r.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}

	locksDir := filepath.Join(filepath.Dir(path), locksDirName)
	lockPath := filepath.Join(locksDir, filepath.Base(path)+".lock")
	deadline := time.Now().Add(timeout)

	for {
		if err := os.MkdirAll(locksDir, dirPerms); err != nil {
			return nil, err
		}

		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockPerms)
		if err != nil {
			return nil, err
		}

		var openStat unix.Stat_t
		if err := unix.Fstat(int(file.Fd()), &openStat); err != nil {
			file.Close()

			return nil, err
		}

		err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			var pathStat unix.Stat_t
			if statErr := unix.Stat(lockPath, &pathStat); statErr != nil || pathStat.Ino != openStat.Ino {
				// File was deleted/replaced, retry.
				_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
				file.Close()

				continue
			}

			return &realLock{path: lockPath, file: file}, nil
		}

		file.Close()

		if !errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("flock %s: %w", lockPath, err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("lock %s: %w", path, os.ErrDeadlineExceeded)
		}

		time.Sleep(lockRetry)
	}
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
