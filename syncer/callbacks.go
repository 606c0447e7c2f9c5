package syncer

import (
	"github.com/dannyswat/fsstore/store"
)

// Options carries callbacks for callers that expect them instead of, or in
// addition to, the returned future. Values is passed back untouched.
type Options struct {
	Success func(target Target, payload any, opts Options)
	Error   func(target Target, err error, opts Options)
	Values  map[string]any
}

// SyncWithCallbacks runs s.Sync and reports the outcome to exactly one of
// opts.Success or opts.Error. A synchronous rejection is reported to
// opts.Error before it is returned.
func SyncWithCallbacks(s Syncer, method Method, target Target, opts Options) (*store.Future[any], error) {
	f, err := s.Sync(method, target)
	if err != nil {
		if opts.Error != nil {
			opts.Error(target, err, opts)
		}
		return nil, err
	}
	if opts.Success == nil && opts.Error == nil {
		return f, nil
	}
	// The returned future settles only after the callback ran.
	return store.Go(func() (any, error) {
		v, err := f.Result()
		if err != nil {
			if opts.Error != nil {
				opts.Error(target, err, opts)
			}
			return nil, err
		}
		if opts.Success != nil {
			opts.Success(target, v, opts)
		}
		return v, nil
	}), nil
}
