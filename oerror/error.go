package oerror

import "fmt"

// Error is a plain formatted error used across the play mode packages.
type Error struct {
	Err string
}

// New returns an error formatted with the given arguments.
func New(format string, args ...interface{}) error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
