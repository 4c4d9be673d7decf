package registry

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/quantor-dev/cerberus/ports"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRegistry(t *testing.T) (ports.TokenRegistry, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRegistry(client), mr
}

func TestRedisRegistry_RegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisRegistry(t)

	require.NoError(t, r.Register(ctx, "tok-1", 0))

	registered, err := r.IsRegistered(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, registered)

	registered, err = r.IsRegistered(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestRedisRegistry_Revoke(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisRegistry(t)

	require.NoError(t, r.Register(ctx, "tok-1", 0))
	require.NoError(t, r.Revoke(ctx, "tok-1"))

	registered, err := r.IsRegistered(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, registered)

	require.NoError(t, r.Revoke(ctx, "tok-1"))
	require.NoError(t, r.Revoke(ctx, "never-registered"))
}

func TestRedisRegistry_TTLExpires(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRegistry(t)

	require.NoError(t, r.Register(ctx, "tok-1", time.Second))

	registered, err := r.IsRegistered(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, registered)

	mr.FastForward(2 * time.Second)

	registered, err = r.IsRegistered(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestRedisRegistry_KeysAreDigests(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRegistry(t)

	require.NoError(t, r.Register(ctx, "raw-token-value", 0))

	// The raw token string must not appear in the keyspace
	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "raw-token-value")
	}
}
