package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	table := &domain.Table{ID: uuid.New(), Number: 1, Capacity: 2, Status: domain.TableAvailable}
	require.NoError(t, m.CreateTable(ctx, table))

	boom := errors.New("boom")
	err := m.RunInTx(ctx, func(ctx context.Context) error {
		locked, err := m.LockTable(ctx, table.ID)
		require.NoError(t, err)
		locked.Status = domain.TableReserved
		require.NoError(t, m.UpdateTable(ctx, locked))
		require.NoError(t, m.CreateTable(ctx, &domain.Table{ID: uuid.New(), Number: 2, Capacity: 2}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.GetTable(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, got.Status)

	all, err := m.ListTables(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStore_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	inside := make(chan struct{})
	release := make(chan struct{})
	boom := errors.New("boom")

	txDone := make(chan error, 1)
	go func() {
		txDone <- m.RunInTx(ctx, func(ctx context.Context) error {
			close(inside)
			<-release
			return boom
		})
	}()
	<-inside

	table := &domain.Table{ID: uuid.New(), Number: 5, Capacity: 2, Status: domain.TableAvailable}
	created := make(chan error, 1)
	go func() { created <- m.CreateTable(ctx, table) }()

	time.Sleep(20 * time.Millisecond)
	close(release)
	assert.ErrorIs(t, <-txDone, boom)
	require.NoError(t, <-created)

	got, err := m.GetTable(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Number)
}

func TestMemoryStore_ListOrdersFilter(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	tableID := uuid.New()
	base := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	for i, status := range []domain.OrderStatus{domain.OrderPending, domain.OrderServed, domain.OrderPending} {
		require.NoError(t, m.CreateOrder(ctx, &domain.Order{
			ID:        uuid.New(),
			TableID:   &tableID,
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, m.CreateOrder(ctx, &domain.Order{ID: uuid.New(), Status: domain.OrderPending, CreatedAt: base}))

	since := base.Add(time.Minute)
	orders, err := m.ListOrders(ctx, domain.OrderFilter{TableID: &tableID, Since: &since})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt), "newest first")

	pending, err := m.ListOrders(ctx, domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderPending}})
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	open, err := m.CountOpenOrders(ctx, tableID)
	require.NoError(t, err)
	assert.Equal(t, 2, open)
}
