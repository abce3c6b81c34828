package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a word that was never captured.
// Use errors.Is to check.
var ErrNotFound = errors.New("word not found")

// StorageError wraps a failure of the underlying persistence layer
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
