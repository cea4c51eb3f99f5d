package store

import (
	"errors"
	"fmt"
)

// ErrStoreFailure matches every error a profile store adapter returns for
// a failed read or write, regardless of backend.
var ErrStoreFailure = errors.New("profile store failure")

// OpError describes a failed store operation. It matches both
// ErrStoreFailure and the underlying driver error.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() []error {
	return []error{ErrStoreFailure, e.Err}
}

// Failure wraps err as an *OpError for op. Adapters outside this package
// use it so their errors classify the same way.
func Failure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
