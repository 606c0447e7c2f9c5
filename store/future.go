package store

import (
	"context"
)

// Future holds the outcome of an asynchronous store operation. It settles
// exactly once, with either a value or an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on a new goroutine and returns a future settled with its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Resolved returns an already settled successful future.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Rejected returns an already settled failed future.
func Rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done is closed once the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the future settles.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Await waits for the future or ctx, whichever comes first. A cancelled ctx
// only stops the wait; the operation itself still runs to completion.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then chains fn onto a successful outcome of f. Failures pass through.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return Go(func() (U, error) {
		v, err := f.Result()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// Catch lets fn recover from a failure of f. Successes pass through.
func Catch[T any](f *Future[T], fn func(error) (T, error)) *Future[T] {
	return Go(func() (T, error) {
		v, err := f.Result()
		if err != nil {
			return fn(err)
		}
		return v, nil
	})
}
