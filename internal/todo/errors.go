package todo

import (
	"errors"
	"fmt"
)

// Kind classifies store errors so callers can branch without parsing text.
type Kind uint8

// Error kinds. The zero value is not a valid kind.
const (
	KindIO Kind = iota + 1
	KindParse
	KindNotFound
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not found"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Sentinel errors, one per [Kind]. Every [*Error] matches its kind's sentinel
// with errors.Is.
var (
	ErrIO              = errors.New("i/o failure")
	ErrParse           = errors.New("malformed store file")
	ErrNotFound        = errors.New("task not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Config errors.
var (
	ErrConfigInvalid  = errors.New("invalid config file")
	ErrConfigRead     = errors.New("cannot read config file")
	ErrNoHomeDir      = errors.New("could not find home directory")
	ErrStoreFileEmpty = errors.New("store_file cannot be empty")
)

// Error is the error type returned by [Store] operations.
type Error struct {
	Kind Kind
	// Op is the failing operation for KindIO ("read", "write", "mkdir", "lock"),
	// or the argument name for KindInvalidArgument.
	Op string
	// Path is the store file for KindIO and KindParse.
	Path string
	// Loc is the offending location inside the store file for KindParse,
	// e.g. "[2].description". Empty when the whole document is bad.
	Loc string
	// ID is the task id for KindNotFound.
	ID uint32
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("task %s not found", FormatID(e.ID))
	case KindIO:
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
	case KindParse:
		if e.Loc != "" {
			return fmt.Sprintf("failed to parse %s: %s: %v", e.Path, e.Loc, e.Err)
		}

		return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
	case KindInvalidArgument:
		return fmt.Sprintf("invalid %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindParse:
		return ErrParse
	case KindNotFound:
		return ErrNotFound
	case KindInvalidArgument:
		return ErrInvalidArgument
	default:
		return nil
	}
}

// KindOf returns the [Kind] of the first [*Error] in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func ioError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

func parseError(path, loc string, err error) *Error {
	return &Error{Kind: KindParse, Path: path, Loc: loc, Err: err}
}

func notFound(id uint32) *Error {
	return &Error{Kind: KindNotFound, ID: id}
}

func invalidArgument(name string, err error) *Error {
	return &Error{Kind: KindInvalidArgument, Op: name, Err: err}
}
