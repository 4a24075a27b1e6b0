// Package fs provides the filesystem seam used by the task store.
//
// The main types are:
//   - [FS]: interface for the filesystem operations todoz needs
//   - [Real]: production implementation using [os] and atomic renames
//   - [Faulty]: testing implementation that fails chosen operations
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile(path)
//	if err != nil {
//	    return err
//	}
package fs

import (
	"io"
	"os"
)

// Locker represents a held file lock.
// Call [Locker.Close] to release the lock.
//
// Example:
//
//	lock, err := fsys.Lock("todos.json")
//	if err != nil {
//	    return err // lock contention or timeout
//	}
//	defer lock.Close()
type Locker interface {
	io.Closer
}

// FS defines the filesystem operations the store and the prompt history use.
//
// Two implementations are provided:
//   - [Real]: production use, wraps [os] package
//   - [Faulty]: testing use, fails selected operations
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never observe a partial file.
	// perm is applied after the rename.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Lock acquires an exclusive advisory lock for path.
	// Blocks until the lock is acquired or returns an error on timeout.
	Lock(path string) (Locker, error)
}

// Op names an [FS] method, used by [Faulty] to pick what fails.
type Op string

// Operations that can be failed by [Faulty].
const (
	OpReadFile        Op = "read"
	OpWriteFileAtomic Op = "write"
	OpMkdirAll        Op = "mkdir"
	OpLock            Op = "lock"
)
