package syncer

import (
	"github.com/dannyswat/fsstore/store"
)

// Dispatcher maps sync methods onto a local record store.
//
//	read   -> GetOne, or GetAll when the target has no id
//	create -> Put (an id is assigned to new records)
//	update -> Put; a record without an id is a ProgrammingError
//	delete -> Delete; a never-persisted record resolves at once
type Dispatcher struct {
	store *store.Store
}

func NewDispatcher(s *store.Store) *Dispatcher {
	return &Dispatcher{store: s}
}

func (d *Dispatcher) Sync(method Method, target Target) (*store.Future[any], error) {
	skip, err := precheck(method, target)
	if err != nil {
		return nil, err
	}
	if skip {
		return store.Resolved[any](nil), nil
	}
	ns := target.ResolveNamespace()
	switch method {
	case MethodRead:
		if id := target.Record.ID(); id != "" {
			return widen(d.store.GetOne(id, ns)), nil
		}
		return widen(d.store.GetAll(ns)), nil
	case MethodDelete:
		f := d.store.Delete(target.Record.ID(), ns)
		return store.Then(f, func(struct{}) (any, error) { return nil, nil }), nil
	default:
		return widen(d.store.Put(target.Record, ns)), nil
	}
}
