package store

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by mutating operations after Close. Reads keep
// serving the last in-memory state.
var ErrClosed = errors.New("store is closed")

// InitError reports a failed Open: the backing file exists but cannot be
// parsed, or the data directory cannot be created or written.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("store init %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// IOError reports a failed flush after an in-memory mutation. The store rolls
// the mutation back before returning it, so memory and disk stay consistent.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("store %s flush %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NotFoundError reports an update targeting an ID absent from its collection.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %q not found", e.Collection, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
