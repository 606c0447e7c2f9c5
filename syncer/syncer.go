// Package syncer connects a data-binding layer's persistence requests to a
// record store. A request names one of four methods and a target; the
// syncer answers with a future for the outcome.
package syncer

import (
	"errors"
	"fmt"

	"github.com/dannyswat/fsstore/store"
)

// Method is a persistence request kind.
type Method string

const (
	MethodRead   Method = "read"
	MethodCreate Method = "create"
	MethodUpdate Method = "update"
	MethodDelete Method = "delete"
)

var (
	ErrMissingID     = errors.New("record has no id")
	ErrUnknownMethod = errors.New("unknown sync method")
)

// ParseMethod returns the Method named s.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodRead, MethodCreate, MethodUpdate, MethodDelete:
		return m, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// ProgrammingError reports a request the caller should never have made. It
// is returned synchronously; no future is created for it.
type ProgrammingError struct {
	Method Method
	Err    error
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *ProgrammingError) Unwrap() error { return e.Err }

// Collection describes the collection a target belongs to.
type Collection struct {
	Namespace string
	Local     bool
}

// Target is the subject of a persistence request: a single record, or a
// whole collection when Record carries no id and the method is read.
type Target struct {
	Record     store.Record
	Namespace  string
	Local      bool
	Collection *Collection
}

// ResolveNamespace returns the target's namespace, falling back to its
// collection's.
func (t Target) ResolveNamespace() string {
	if t.Namespace != "" || t.Collection == nil {
		return t.Namespace
	}
	return t.Collection.Namespace
}

// Syncer carries out persistence requests. Sync returns an error only for
// requests rejected before any asynchronous work starts.
type Syncer interface {
	Sync(method Method, target Target) (*store.Future[any], error)
}

// SyncerFunc adapts a function to Syncer.
type SyncerFunc func(method Method, target Target) (*store.Future[any], error)

func (f SyncerFunc) Sync(method Method, target Target) (*store.Future[any], error) {
	return f(method, target)
}

// precheck applies the rules shared by every Syncer. skip reports a delete
// of a record that was never persisted.
func precheck(method Method, target Target) (skip bool, err error) {
	if err := target.Record.CheckID(); err != nil {
		return false, &ProgrammingError{Method: method, Err: err}
	}
	switch method {
	case MethodRead, MethodCreate:
		return false, nil
	case MethodUpdate:
		if target.Record.IsNew() {
			return false, &ProgrammingError{Method: method, Err: ErrMissingID}
		}
		return false, nil
	case MethodDelete:
		return target.Record.IsNew(), nil
	}
	return false, fmt.Errorf("%q: %w", method, ErrUnknownMethod)
}

func widen[T any](f *store.Future[T]) *store.Future[any] {
	return store.Then(f, func(v T) (any, error) { return v, nil })
}
