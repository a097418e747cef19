package storage

import (
	"context"
	"strconv"
	"testing"
	"time"

	"tableside/pkg/statskeys"
	"tableside/stats-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = 30 * 24 * time.Hour

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, ttl), mr
}

func TestStore_Apply(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	created := domain.NewDelta("2026-03-14")
	created.Counters[statskeys.Orders] = 1
	created.Items["Soup"] = 2
	created.Items["Tea"] = 1
	require.NoError(t, store.Apply(ctx, created))
	require.NoError(t, store.Apply(ctx, created))

	cancelled := domain.NewDelta("2026-03-14")
	cancelled.Counters[statskeys.Cancelled] = 1
	cancelled.Items["Tea"] = -2
	require.NoError(t, store.Apply(ctx, cancelled))

	paid := domain.NewDelta("2026-03-14")
	paid.Counters[statskeys.Paid] = 1
	paid.Revenue = decimal.RequireFromString("12.50")
	require.NoError(t, store.Apply(ctx, paid))
	paid.Revenue = decimal.RequireFromString("7.25")
	require.NoError(t, store.Apply(ctx, paid))

	daily := statskeys.Daily("2026-03-14")
	assert.Equal(t, "2", mr.HGet(daily, statskeys.Orders))
	assert.Equal(t, "1", mr.HGet(daily, statskeys.Cancelled))
	assert.Equal(t, "2", mr.HGet(daily, statskeys.Paid))
	revenue, err := strconv.ParseFloat(mr.HGet(daily, statskeys.Revenue), 64)
	require.NoError(t, err)
	assert.InDelta(t, 19.75, revenue, 0.0001)
	assert.Equal(t, ttl, mr.TTL(daily))

	items := statskeys.Items("2026-03-14")
	members, err := mr.ZMembers(items)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, members)
	score, err := mr.ZScore(items, "Soup")
	require.NoError(t, err)
	assert.Equal(t, 4.0, score)
	assert.Equal(t, ttl, mr.TTL(items))
}

func TestStore_ApplyExpires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	d := domain.NewDelta("2026-03-14")
	d.Counters[statskeys.Reservations] = 1
	require.NoError(t, store.Apply(ctx, d))

	mr.FastForward(ttl + time.Second)
	assert.False(t, mr.Exists(statskeys.Daily("2026-03-14")))
	assert.False(t, mr.Exists(statskeys.Items("2026-03-14")))
}

func TestStore_SeenAndMark(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	seen, err := store.Seen(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.MarkProcessed(ctx, "evt-1"))
	seen, err = store.Seen(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, ttl, mr.TTL(statskeys.Seen("evt-1")))
}

func TestStore_Unreachable(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()

	_, err := store.Seen(context.Background(), "evt-1")
	assert.Error(t, err)
	d := domain.NewDelta("2026-03-14")
	d.Counters[statskeys.Orders] = 1
	assert.Error(t, store.Apply(context.Background(), d))
}
