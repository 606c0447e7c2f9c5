package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidID        = errors.New("invalid record id")
	ErrInvalidNamespace = errors.New("invalid namespace")
	ErrQuotaExceeded    = errors.New("storage quota exceeded")
)

// DirectoryError reports that a namespace directory could not be obtained.
// Every operation on that namespace fails with it before touching files.
type DirectoryError struct {
	Namespace string
	Err       error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("resolve directory %q: %v", e.Namespace, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// NotFoundError is returned when the record file does not exist.
// errors.Is(err, ErrNotFound) holds for it.
type NotFoundError struct {
	Namespace string
	ID        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Namespace, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// FileError wraps a platform failure while reading, writing, listing or
// removing a record file.
type FileError struct {
	Op        string
	Namespace string
	ID        string
	Err       error
}

func (e *FileError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Namespace, e.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Namespace, e.ID, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParseError is returned when a record file holds invalid JSON.
type ParseError struct {
	Namespace string
	ID        string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s/%s: %v", e.Namespace, e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
