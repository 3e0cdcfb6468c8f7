package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	locker := NewRedisLocker(rdb, 30*time.Second)
	ctx := context.Background()
	id := uuid.New()

	ok, err := locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, mr.TTL(confirmKeyPrefix+id.String()))

	ok, err = locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "second callback must not get the lock")

	other, err := locker.Acquire(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, other)

	require.NoError(t, locker.Release(ctx, id))
	ok, err = locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(31 * time.Second)
	ok, err = locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok, "expired marker frees the payment")
}
