package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/caddan/ordna/pkg/adapters/redis"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunHistoryStoreContract(t, store)
}

func TestRedisStore_TTLExpiration(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	err := store.Append(ctx, "session-ttl", domain.Decision{
		At:   time.Now().UTC(),
		Kind: domain.DecisionProposal,
	})
	require.NoError(t, err)

	journal, err := store.List(ctx, "session-ttl")
	require.NoError(t, err)
	assert.Len(t, journal, 1)

	mr.FastForward(2 * time.Second)

	journal, err = store.List(ctx, "session-ttl")
	require.NoError(t, err)
	assert.Empty(t, journal)
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})

	a := redis.NewFromClient(client, redis.WithPrefix("a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("b:"))
	ctx := context.Background()

	require.NoError(t, a.Append(ctx, "s", domain.Decision{Kind: domain.DecisionApprove}))

	fromB, err := b.List(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, fromB)

	fromA, err := a.List(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, fromA, 1)
}
