package store_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannyswat/fsstore/store"
)

func TestFuture_AwaitTimeoutLeavesOperationRunning(t *testing.T) {
	release := make(chan struct{})
	f := store.Go(func() (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFuture_ThenAndCatch(t *testing.T) {
	f := store.Then(store.Resolved(21), func(v int) (string, error) {
		return strconv.Itoa(v * 2), nil
	})
	s, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	boom := errors.New("boom")
	called := false
	g := store.Then(store.Rejected[int](boom), func(int) (int, error) {
		called = true
		return 0, nil
	})
	_, err = g.Result()
	require.ErrorIs(t, err, boom)
	assert.False(t, called)

	h := store.Catch(g, func(err error) (int, error) { return -1, nil })
	v, err := h.Result()
	require.NoError(t, err)
	assert.Equal(t, -1, v)
}

func TestFuture_Done(t *testing.T) {
	f := store.Resolved("x")
	select {
	case <-f.Done():
	default:
		t.Fatal("resolved future should be done")
	}
}
