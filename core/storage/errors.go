package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target container or blob is absent.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when the target already exists and exclusivity was requested.
	ErrConflict = errors.New("resource already exists")
	// ErrMissingCredential is returned at construction when no credential is configured.
	ErrMissingCredential = errors.New("missing storage credential")
	// ErrDecoding is returned when blob content cannot be decoded as text.
	ErrDecoding = errors.New("cannot decode blob content")
)

// Error carries the operation and target of a translated backend failure.
// It unwraps to both its Kind sentinel and the native SDK error, so callers
// can match with errors.Is(err, storage.ErrNotFound) and still reach the
// SDK error with errors.As.
type Error struct {
	Op        string
	Container string
	Blob      string
	Kind      error
	Err       error
}

func (e *Error) Error() string {
	target := e.Container
	if e.Blob != "" {
		target += "/" + e.Blob
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, target, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound builds an ErrNotFound-kind error for op on container/blob.
func NotFound(op, container, blob string, cause error) *Error {
	return &Error{Op: op, Container: container, Blob: blob, Kind: ErrNotFound, Err: cause}
}

// Conflict builds an ErrConflict-kind error for op on container/blob.
func Conflict(op, container, blob string, cause error) *Error {
	return &Error{Op: op, Container: container, Blob: blob, Kind: ErrConflict, Err: cause}
}

// IsNotFound reports whether err signals a missing container or blob.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err signals an already existing resource.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
