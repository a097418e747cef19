package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestOrderRecalculate(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{Name: "Soup", Price: MustMoney("5.00"), Quantity: 2},
		{Name: "Tea", Price: MustMoney("3.00"), Quantity: 1},
	}}

	order.Recalculate()

	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, "13.00", order.TotalAmount.String())
	assert.Equal(t, "1.30", order.TaxAmount().String())
	assert.Equal(t, "14.30", order.GrandTotal().String())
}

func TestOrderJSONIncludesDisplayTax(t *testing.T) {
	order := Order{ID: uuid.New(), TotalAmount: MustMoney("20"), Status: OrderPending}

	payload, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "20.00", decoded["total_amount"])
	assert.Equal(t, "2.00", decoded["tax_amount"])
	assert.Equal(t, "22.00", decoded["grand_total"])
	assert.Equal(t, "pending", decoded["status"])
}

func TestMoneyUnmarshal(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"4.5"`), &m))
	assert.Equal(t, "4.50", m.String())

	require.NoError(t, json.Unmarshal([]byte(`7`), &m))
	assert.Equal(t, "7.00", m.String())
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPreparing, OrderServed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderPending, OrderServed, false},
		{OrderServed, OrderPending, false},
		{OrderServed, OrderCancelled, false},
		{OrderCancelled, OrderPreparing, false},
		{OrderCancelled, OrderPending, false},
		{OrderPending, OrderPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestReservationStatusTransitions(t *testing.T) {
	assert.True(t, ReservationPending.CanTransitionTo(ReservationConfirmed))
	assert.True(t, ReservationPending.CanTransitionTo(ReservationCancelled))
	assert.True(t, ReservationConfirmed.CanTransitionTo(ReservationCompleted))
	assert.True(t, ReservationConfirmed.CanTransitionTo(ReservationCancelled))
	assert.False(t, ReservationPending.CanTransitionTo(ReservationCompleted))
	assert.False(t, ReservationCancelled.CanTransitionTo(ReservationConfirmed))
	assert.False(t, ReservationCompleted.CanTransitionTo(ReservationCancelled))
	assert.True(t, ReservationConfirmed.Active())
	assert.False(t, ReservationCompleted.Active())
}

func TestTableRules(t *testing.T) {
	now := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)
	table := &Table{Capacity: 4, IsAvailable: true, Status: TableAvailable}

	table.Reserve(GuestInfo{Name: "Ada", Phone: "555"})
	assert.False(t, table.IsAvailable)
	assert.True(t, table.IsReserved)
	assert.Equal(t, TableReserved, table.Status)
	require.NotNil(t, table.ReservedBy)
	assert.Equal(t, "Ada", table.ReservedBy.Name)

	table.ClearReservation()
	assert.True(t, table.IsAvailable)
	assert.False(t, table.IsReserved)
	assert.Nil(t, table.ReservedBy)

	table.Occupy()
	assert.False(t, table.IsAvailable)
	assert.True(t, table.IsReserved)
	assert.Equal(t, TableReserved, table.Status)

	table.IsPaid = true
	table.EstimatedServeMinutes = intPtr(15)
	table.Free(now)
	assert.True(t, table.IsAvailable)
	assert.False(t, table.IsPaid)
	assert.Nil(t, table.EstimatedServeMinutes)
	assert.Equal(t, now, table.ServiceStartedAt)
}

func TestTableFollowOrder(t *testing.T) {
	table := &Table{IsAvailable: true, Status: TableAvailable}
	order := &Order{Status: OrderPreparing, Items: []OrderItem{
		{Quantity: 1, EstimatedServeMinutes: intPtr(10)},
		{Quantity: 1, EstimatedServeMinutes: intPtr(25)},
		{Quantity: 1},
	}}

	table.FollowOrder(order)
	assert.False(t, table.IsAvailable)
	assert.Equal(t, TablePreparing, table.Status)
	require.NotNil(t, table.EstimatedServeMinutes)
	assert.Equal(t, 25, *table.EstimatedServeMinutes)

	order.Status = OrderServed
	table.FollowOrder(order)
	assert.Equal(t, TableServed, table.Status)
	assert.Nil(t, table.EstimatedServeMinutes)
}

func TestReservationPatchApply(t *testing.T) {
	res := Reservation{GuestCount: 2, ReservationDate: "2026-10-16", Status: ReservationPending}
	date := "2026-10-17"
	confirmed := ReservationConfirmed

	ReservationPatch{ReservationDate: &date, Status: &confirmed}.Apply(&res)

	assert.Equal(t, 2, res.GuestCount)
	assert.Equal(t, "2026-10-17", res.ReservationDate)
	assert.Equal(t, ReservationConfirmed, res.Status)
	assert.True(t, res.IsOn("2026-10-17"))

	other := uuid.New()
	assert.True(t, ReservationPatch{TableID: &other}.Retargets(res.TableID))
	assert.False(t, ReservationPatch{}.Retargets(res.TableID))
}
