package syncer

import (
	"errors"
	"log/slog"

	"github.com/dannyswat/fsstore/store"
)

var ErrNoRemote = errors.New("no remote syncer configured")

// Predicate decides whether a target is persisted locally.
type Predicate func(Target) bool

// UseLocalFlag selects local persistence when the target or its collection
// is flagged Local.
func UseLocalFlag(t Target) bool {
	return t.Local || (t.Collection != nil && t.Collection.Local)
}

// Router sends each request to the local or the remote syncer. The choice
// depends only on the predicate.
type Router struct {
	local    Syncer
	remote   Syncer
	useLocal Predicate
	logger   *slog.Logger
}

// NewRouter creates a Router. A nil predicate means UseLocalFlag; remote may
// be nil, in which case requests not selected for local storage fail.
func NewRouter(local, remote Syncer, useLocal Predicate, logger *slog.Logger) *Router {
	if useLocal == nil {
		useLocal = UseLocalFlag
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{local: local, remote: remote, useLocal: useLocal, logger: logger}
}

func (r *Router) Sync(method Method, target Target) (*store.Future[any], error) {
	if r.useLocal(target) {
		r.logger.Debug("sync", "method", method, "namespace", target.ResolveNamespace(), "backend", "local")
		return r.local.Sync(method, target)
	}
	if r.remote == nil {
		return nil, ErrNoRemote
	}
	r.logger.Debug("sync", "method", method, "namespace", target.ResolveNamespace(), "backend", "remote")
	return r.remote.Sync(method, target)
}
