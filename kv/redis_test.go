package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/azulpay/kv"
	"github.com/ceyewan/azulpay/testkit"
)

// 集成测试：通过 testcontainers 启动真实 Redis 实例
func newRedisStore(t *testing.T) kv.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	conn := testkit.NewRedisContainerConnector(t)
	store, err := kv.New(&kv.Config{
		Driver: kv.DriverRedis,
		Prefix: "azulpay-test:",
	}, kv.WithRedisConnector(conn), kv.WithLogger(testkit.NewLogger()))
	require.NoError(t, err)
	return store
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	key := testkit.NewID()

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, key, "v1"))
	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	require.NoError(t, store.Set(ctx, key, "v2"))
	value, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestRedisStoreSetNX(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	key := testkit.NewID()

	created, err := store.SetNX(ctx, key, "owner-a")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.SetNX(ctx, key, "owner-b")
	require.NoError(t, err)
	assert.False(t, created)

	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "owner-a", value)

	// 删除后可以重新抢占
	require.NoError(t, store.Delete(ctx, key))
	created, err = store.SetNX(ctx, key, "owner-b")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRedisStoreDeleteMissing(t *testing.T) {
	store := newRedisStore(t)

	assert.NoError(t, store.Delete(context.Background(), testkit.NewID()))
}
