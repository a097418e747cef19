package service_test

import (
	"errors"
	"testing"
	"time"

	"tableside/dining-svc/internal/domain"
	"tableside/dining-svc/internal/mocks"
	"tableside/dining-svc/internal/service"
	"tableside/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	*fixture
	table *domain.Table
	buyer *domain.User
	soup  *domain.MenuItem
	tea   *domain.MenuItem
}

func newOrderFixture(t *testing.T, publisher service.EventPublisher) *orderFixture {
	f := newFixtureWith(t, publisher)
	mains := f.category(t, "Mains")
	return &orderFixture{
		fixture: f,
		table:   f.table(t, 1, 4),
		buyer:   f.user(t, "user_ada"),
		soup:    f.menuItem(t, mains, "Soup", "5.00", 12),
		tea:     f.menuItem(t, mains, "Tea", "3.00", 4),
	}
}

func TestOrderCreate_TotalsFromMenuSnapshot(t *testing.T) {
	f := newOrderFixture(t, nil)

	order := f.order(t, f.buyer, f.table, line(f.soup, 2), line(f.tea, 1))

	assert.Equal(t, "13.00", order.TotalAmount.String())
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.Equal(t, f.buyer.ID, order.BuyerID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Soup", order.Items[0].Name)
	assert.Equal(t, "5.00", order.Items[0].Price.String())
	assert.Equal(t, 12, *order.EstimatedServeMinutes())

	// placing an order never touches the table
	got := f.reload(t, f.table)
	assert.True(t, got.IsAvailable)
	assert.Equal(t, domain.TableAvailable, got.Status)

	assert.Equal(t, []string{events.OrderCreated}, f.published.types())
	created := f.published.last()
	assert.Equal(t, "13.00", created.Amount)
	assert.Equal(t, today, created.Date)
	assert.Len(t, created.Items, 2)
}

func TestOrderCreate_SnapshotSurvivesMenuChanges(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.order(t, f.buyer, f.table, line(f.soup, 1))

	_, err := f.menu.UpdateItem(ctx, f.soup.ID, domain.MenuItemPatch{Price: ptr(domain.MustMoney("9.50"))})
	require.NoError(t, err)

	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.00", stored.Items[0].Price.String())
	assert.Equal(t, "5.00", stored.TotalAmount.String())
}

func TestOrderCreate_Rejections(t *testing.T) {
	f := newOrderFixture(t, nil)

	_, err := f.menu.UpdateItem(ctx, f.tea.ID, domain.MenuItemPatch{IsAvailable: ptr(false)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      domain.CreateOrderInput
		wantErr error
	}{
		{
			name:    "no items",
			in:      domain.CreateOrderInput{Buyer: "user_ada", Table: f.table.ID},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "zero quantity",
			in:      domain.CreateOrderInput{Buyer: "user_ada", Table: f.table.ID, OrderItems: []domain.OrderItemInput{line(f.soup, 0)}},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing buyer",
			in:      domain.CreateOrderInput{Table: f.table.ID, OrderItems: []domain.OrderItemInput{line(f.soup, 1)}},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown buyer",
			in:      domain.CreateOrderInput{Buyer: "user_nobody", Table: f.table.ID, OrderItems: []domain.OrderItemInput{line(f.soup, 1)}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown table",
			in:      domain.CreateOrderInput{Buyer: "user_ada", Table: uuid.New(), OrderItems: []domain.OrderItemInput{line(f.soup, 1)}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown menu item",
			in:      domain.CreateOrderInput{Buyer: "user_ada", Table: f.table.ID, OrderItems: []domain.OrderItemInput{{MenuItemID: uuid.New(), Quantity: 1}}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unavailable menu item",
			in:      domain.CreateOrderInput{Buyer: "user_ada", Table: f.table.ID, OrderItems: []domain.OrderItemInput{line(f.tea, 1)}},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := f.orders.Create(ctx, tt.in)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := f.orders.List(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestOrderUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []domain.OrderStatus
		next    domain.OrderStatus
		wantErr error
	}{
		{name: "pending to preparing", next: domain.OrderPreparing},
		{name: "pending to cancelled", next: domain.OrderCancelled},
		{name: "preparing to served", path: []domain.OrderStatus{domain.OrderPreparing}, next: domain.OrderServed},
		{name: "preparing to cancelled", path: []domain.OrderStatus{domain.OrderPreparing}, next: domain.OrderCancelled},
		{name: "pending to served", next: domain.OrderServed, wantErr: domain.ErrInvalidTransition},
		{name: "served to pending", path: []domain.OrderStatus{domain.OrderPreparing, domain.OrderServed}, next: domain.OrderPending, wantErr: domain.ErrInvalidTransition},
		{name: "served to cancelled", path: []domain.OrderStatus{domain.OrderPreparing, domain.OrderServed}, next: domain.OrderCancelled, wantErr: domain.ErrInvalidTransition},
		{name: "cancelled to preparing", path: []domain.OrderStatus{domain.OrderCancelled}, next: domain.OrderPreparing, wantErr: domain.ErrInvalidTransition},
		{name: "cancelled to pending", path: []domain.OrderStatus{domain.OrderCancelled}, next: domain.OrderPending, wantErr: domain.ErrInvalidTransition},
		{name: "unknown status", next: domain.OrderStatus("eaten"), wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t, nil)
			order := f.order(t, f.buyer, f.table, line(f.soup, 1))
			for _, step := range tt.path {
				_, err := f.orders.UpdateStatus(ctx, order.ID, step, service.TableActionNone)
				require.NoError(t, err)
			}
			before, err := f.orders.Get(ctx, order.ID)
			require.NoError(t, err)

			updated, err := f.orders.UpdateStatus(ctx, order.ID, tt.next, service.TableActionNone)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				after, err := f.orders.Get(ctx, order.ID)
				require.NoError(t, err)
				assert.Equal(t, before.Status, after.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, updated.Status)

			last := f.published.last()
			assert.Equal(t, events.OrderStatusChanged, last.Type)
			assert.Equal(t, string(tt.next), last.Status)
			assert.Equal(t, string(before.Status), last.PrevStatus)
		})
	}
}

func TestOrderUpdateStatus_CancelThenPrepareFails(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.order(t, f.buyer, f.table, line(f.soup, 1))

	cancelled, err := f.orders.UpdateStatus(ctx, order.ID, domain.OrderCancelled, service.TableActionNone)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, cancelled.Status)

	_, err = f.orders.UpdateStatus(ctx, order.ID, domain.OrderPreparing, service.TableActionNone)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderUpdateStatus_TableActions(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.order(t, f.buyer, f.table, line(f.soup, 1), line(f.tea, 2))

	_, err := f.orders.UpdateStatus(ctx, order.ID, domain.OrderPreparing, service.TableActionSync)
	require.NoError(t, err)

	got := f.reload(t, f.table)
	assert.Equal(t, domain.TablePreparing, got.Status)
	assert.False(t, got.IsAvailable)
	require.NotNil(t, got.EstimatedServeMinutes)
	assert.Equal(t, 12, *got.EstimatedServeMinutes)

	_, err = f.orders.UpdateStatus(ctx, order.ID, domain.OrderServed, service.TableActionNone)
	require.NoError(t, err)
	assert.Equal(t, domain.TablePreparing, f.reload(t, f.table).Status, "no action leaves the table alone")

	f.clock.Advance(40 * time.Minute)
	second := f.order(t, f.buyer, f.table, line(f.tea, 1))
	_, err = f.orders.UpdateStatus(ctx, second.ID, domain.OrderCancelled, service.TableActionRelease)
	require.NoError(t, err)

	got = f.reload(t, f.table)
	assert.True(t, got.IsAvailable)
	assert.Equal(t, domain.TableAvailable, got.Status)
	assert.Nil(t, got.EstimatedServeMinutes)
	assert.Equal(t, f.clock.Now(), got.ServiceStartedAt)
	assert.Equal(t, events.TableReleased, f.published.last().Type)

	_, err = f.orders.UpdateStatus(ctx, order.ID, domain.OrderServed, service.TableAction("wipe"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderCancelByCustomer(t *testing.T) {
	f := newOrderFixture(t, nil)
	other := f.user(t, "user_bob")

	t.Run("within window", func(t *testing.T) {
		order := f.order(t, f.buyer, f.table, line(f.soup, 1))
		f.clock.Advance(4 * time.Minute)

		cancelled, err := f.orders.CancelByCustomer(ctx, order.ID, f.buyer.ExternalID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCancelled, cancelled.Status)
	})

	t.Run("window elapsed", func(t *testing.T) {
		order := f.order(t, f.buyer, f.table, line(f.soup, 1))
		f.clock.Advance(5*time.Minute + time.Second)

		_, err := f.orders.CancelByCustomer(ctx, order.ID, f.buyer.ExternalID)
		assert.ErrorIs(t, err, domain.ErrCancelWindowElapsed)

		stored, err := f.orders.Get(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, stored.Status)
	})

	t.Run("someone else's order", func(t *testing.T) {
		order := f.order(t, f.buyer, f.table, line(f.soup, 1))

		_, err := f.orders.CancelByCustomer(ctx, order.ID, other.ExternalID)
		assert.ErrorIs(t, err, domain.ErrNotOrderOwner)
	})

	t.Run("already served", func(t *testing.T) {
		order := f.order(t, f.buyer, f.table, line(f.soup, 1))
		_, err := f.orders.UpdateStatus(ctx, order.ID, domain.OrderPreparing, service.TableActionNone)
		require.NoError(t, err)
		_, err = f.orders.UpdateStatus(ctx, order.ID, domain.OrderServed, service.TableActionNone)
		require.NoError(t, err)

		_, err = f.orders.CancelByCustomer(ctx, order.ID, f.buyer.ExternalID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestOrderMarkPaid_Idempotent(t *testing.T) {
	publisher := mocks.NewEventPublisher(t)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.OrderCreated
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.OrderPaid
	})).Return(nil).Once()

	f := newOrderFixture(t, publisher)
	order := f.order(t, f.buyer, f.table, line(f.soup, 2))

	first, err := f.orders.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.PaidAt)
	assert.Equal(t, now, *first.PaidAt)

	f.clock.Advance(time.Minute)
	second, err := f.orders.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, second.IsPaid)
	assert.Equal(t, now, *second.PaidAt)

	assert.True(t, f.reload(t, f.table).IsPaid)
}

func TestOrderMarkPaid_TablePaidWhenSeatingSettled(t *testing.T) {
	f := newOrderFixture(t, nil)
	first := f.order(t, f.buyer, f.table, line(f.soup, 1))
	second := f.order(t, f.buyer, f.table, line(f.tea, 1))
	dropped := f.order(t, f.buyer, f.table, line(f.tea, 3))
	_, err := f.orders.UpdateStatus(ctx, dropped.ID, domain.OrderCancelled, service.TableActionNone)
	require.NoError(t, err)

	_, err = f.orders.MarkPaid(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, f.reload(t, f.table).IsPaid)

	_, err = f.orders.MarkPaid(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, f.reload(t, f.table).IsPaid)

	_, err = f.orders.MarkPaid(ctx, dropped.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.orders.MarkPaid(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderPublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := mocks.NewEventPublisher(t)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	f := newOrderFixture(t, publisher)
	order, err := f.orders.Create(ctx, domain.CreateOrderInput{
		Buyer:      f.buyer.ExternalID,
		Table:      f.table.ID,
		OrderItems: []domain.OrderItemInput{line(f.soup, 1)},
	})

	require.NoError(t, err)
	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
}

func TestOrderTableOrders_CurrentSeatingOnly(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.order(t, f.buyer, f.table, line(f.soup, 1))

	f.clock.Advance(time.Hour)
	_, err := f.tables.MarkAvailable(ctx, f.table.ID)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	current := f.order(t, f.buyer, f.table, line(f.tea, 1))

	orders, err := f.orders.TableOrders(ctx, f.table.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, current.ID, orders[0].ID)

	all, err := f.orders.List(ctx, domain.OrderFilter{TableID: &f.table.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderList_StatusFilter(t *testing.T) {
	f := newOrderFixture(t, nil)
	a := f.order(t, f.buyer, f.table, line(f.soup, 1))
	f.order(t, f.buyer, f.table, line(f.tea, 1))
	_, err := f.orders.UpdateStatus(ctx, a.ID, domain.OrderPreparing, service.TableActionNone)
	require.NoError(t, err)

	preparing, err := f.orders.List(ctx, domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderPreparing}})
	require.NoError(t, err)
	require.Len(t, preparing, 1)
	assert.Equal(t, a.ID, preparing[0].ID)

	_, err = f.orders.List(ctx, domain.OrderFilter{Statuses: []domain.OrderStatus{"lost"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderDelete(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.order(t, f.buyer, f.table, line(f.soup, 1))

	require.NoError(t, f.orders.Delete(ctx, order.ID))
	_, err := f.orders.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.orders.Delete(ctx, order.ID), domain.ErrNotFound)
}

func TestGroupOrdersByTable(t *testing.T) {
	tableA, tableB := uuid.New(), uuid.New()
	order := func(table uuid.UUID, status domain.OrderStatus, amount string, qty int, paid bool) domain.Order {
		return domain.Order{
			ID:          uuid.New(),
			TableID:     &table,
			Status:      status,
			TotalAmount: domain.MustMoney(amount),
			Quantity:    qty,
			IsPaid:      paid,
		}
	}

	tests := []struct {
		name       string
		orders     []domain.Order
		wantStatus domain.OrderStatus
		wantTotal  string
		wantQty    int
		wantPaid   bool
	}{
		{
			name: "pending wins",
			orders: []domain.Order{
				order(tableA, domain.OrderServed, "10.00", 1, false),
				order(tableA, domain.OrderPending, "4.50", 2, false),
				order(tableA, domain.OrderPreparing, "1.00", 1, false),
			},
			wantStatus: domain.OrderPending, wantTotal: "15.50", wantQty: 4,
		},
		{
			name: "preparing over served",
			orders: []domain.Order{
				order(tableA, domain.OrderServed, "10.00", 1, true),
				order(tableA, domain.OrderPreparing, "2.00", 1, false),
			},
			wantStatus: domain.OrderPreparing, wantTotal: "12.00", wantQty: 2,
		},
		{
			name: "cancelled orders do not count",
			orders: []domain.Order{
				order(tableA, domain.OrderServed, "10.00", 1, true),
				order(tableA, domain.OrderCancelled, "99.00", 9, false),
			},
			wantStatus: domain.OrderServed, wantTotal: "10.00", wantQty: 1, wantPaid: true,
		},
		{
			name: "only cancelled",
			orders: []domain.Order{
				order(tableA, domain.OrderCancelled, "5.00", 1, false),
			},
			wantStatus: domain.OrderCancelled, wantTotal: "0.00", wantQty: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := service.GroupOrdersByTable(tt.orders)
			require.Len(t, groups, 1)
			g := groups[0]
			assert.Equal(t, tableA, g.TableID)
			assert.Equal(t, tt.wantStatus, g.Status)
			assert.Equal(t, tt.wantTotal, g.TotalAmount.String())
			assert.Equal(t, tt.wantQty, g.Quantity)
			assert.Equal(t, tt.wantPaid, g.IsPaid)
			assert.Len(t, g.Orders, len(tt.orders))
		})
	}

	t.Run("one group per table, orders without table skipped", func(t *testing.T) {
		groups := service.GroupOrdersByTable([]domain.Order{
			order(tableA, domain.OrderPending, "1.00", 1, false),
			order(tableB, domain.OrderServed, "2.00", 1, false),
			{ID: uuid.New(), Status: domain.OrderServed, TotalAmount: domain.MustMoney("3.00")},
			order(tableA, domain.OrderServed, "1.00", 1, false),
		})
		require.Len(t, groups, 2)
		assert.Equal(t, tableA, groups[0].TableID)
		assert.Len(t, groups[0].Orders, 2)
		assert.Equal(t, tableB, groups[1].TableID)
	})
}
