package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannyswat/fsstore/store"
)

func TestFixedQuota(t *testing.T) {
	n, err := store.FixedQuota{Limit: 100}.Request(100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)

	n, err = store.FixedQuota{Limit: 100}.Request(10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	_, err = store.FixedQuota{Limit: 100}.Request(500)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)

	_, err = store.FixedQuota{}.Request(1)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)

	n, err = store.FixedQuota{}.Request(0)
	require.NoError(t, err)
	assert.Zero(t, n)
}
