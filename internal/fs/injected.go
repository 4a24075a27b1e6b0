package fs

import (
	"errors"
	"syscall"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Op  Op
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
// Returns false if err is nil.
func IsInjected(err error) bool {
	if err == nil {
		return false
	}

	var injected *InjectedError

	return errors.As(err, &injected)
}

// inject wraps err in an InjectedError for op.
// A nil err becomes EIO, the errno a failing disk would report.
func inject(op Op, err error) error {
	if err == nil {
		err = syscall.EIO
	}

	if IsInjected(err) {
		return err
	}

	return &InjectedError{Op: op, Err: err}
}
