package cli

import (
	"errors"

	"github.com/calvinalkan/todoz/internal/todo"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// hintError is a usage problem caught before the store is touched: a missing
// description, a task number that is not a number, an unknown flag. It is
// shown as a gentle hint rather than a failure.
type hintError struct {
	symbol string
	msg    string
}

func (e *hintError) Error() string {
	return e.msg
}

// Unwrap makes hints match todo.ErrInvalidArgument.
func (e *hintError) Unwrap() error {
	return todo.ErrInvalidArgument
}

func hint(symbol, msg string) error {
	return &hintError{symbol: symbol, msg: msg}
}
