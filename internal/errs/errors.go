// Package errs defines the errors shared across the application layers.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested slug is unknown.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a slug is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRequest is returned on malformed input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDBNotConnected is reported by stores that have no database behind them.
	ErrDBNotConnected = errors.New("database not connected")
	// ErrNilDependency is returned by constructors given a nil dependency.
	ErrNilDependency = errors.New("nil dependency")
)

// StorageError wraps a failure of the persistence layer. A failed save must
// stay distinguishable from a success, so write failures are carried in a
// dedicated type rather than a plain wrapped error.
type StorageError struct {
	Op   string // failing operation, e.g. "save"
	Path string // storage location, empty for non-file stores
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage: %s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError builds a StorageError for the given operation.
func NewStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}
