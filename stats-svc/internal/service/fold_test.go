package service

import (
	"testing"
	"time"

	"tableside/pkg/events"
	"tableside/pkg/statskeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	items := []events.Item{
		{MenuItemID: "a", Name: "Soup", Quantity: 2, Price: "5.00"},
		{MenuItemID: "b", Name: "Tea", Quantity: 1, Price: "3.00"},
	}

	tests := []struct {
		name         string
		event        events.Event
		wantCounters map[string]int64
		wantItems    map[string]int64
		wantRevenue  string
	}{
		{
			name:         "order created counts items",
			event:        events.Event{Type: events.OrderCreated, Date: "2026-03-14", Items: items},
			wantCounters: map[string]int64{statskeys.Orders: 1},
			wantItems:    map[string]int64{"Soup": 2, "Tea": 1},
			wantRevenue:  "0",
		},
		{
			name:         "cancellation takes items back",
			event:        events.Event{Type: events.OrderStatusChanged, Status: "cancelled", Date: "2026-03-14", Items: items},
			wantCounters: map[string]int64{statskeys.Cancelled: 1},
			wantItems:    map[string]int64{"Soup": -2, "Tea": -1},
			wantRevenue:  "0",
		},
		{
			name:         "served",
			event:        events.Event{Type: events.OrderStatusChanged, Status: "served", Date: "2026-03-14"},
			wantCounters: map[string]int64{statskeys.Served: 1},
			wantItems:    map[string]int64{},
			wantRevenue:  "0",
		},
		{
			name:         "preparing is ignored",
			event:        events.Event{Type: events.OrderStatusChanged, Status: "preparing", Date: "2026-03-14"},
			wantCounters: map[string]int64{},
			wantItems:    map[string]int64{},
			wantRevenue:  "0",
		},
		{
			name:         "paid adds revenue",
			event:        events.Event{Type: events.OrderPaid, Amount: "13.00", Date: "2026-03-14"},
			wantCounters: map[string]int64{statskeys.Paid: 1},
			wantItems:    map[string]int64{},
			wantRevenue:  "13",
		},
		{
			name:         "reservation created",
			event:        events.Event{Type: events.ReservationCreated, Quantity: 4, Date: "2026-03-14"},
			wantCounters: map[string]int64{statskeys.Reservations: 1},
			wantItems:    map[string]int64{},
			wantRevenue:  "0",
		},
		{
			name:         "table released",
			event:        events.Event{Type: events.TableReleased, Date: "2026-03-14"},
			wantCounters: map[string]int64{statskeys.Released: 1},
			wantItems:    map[string]int64{},
			wantRevenue:  "0",
		},
		{
			name:         "unknown type",
			event:        events.Event{Type: "menu.updated", Date: "2026-03-14"},
			wantCounters: map[string]int64{},
			wantItems:    map[string]int64{},
			wantRevenue:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Fold(tt.event, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, "2026-03-14", d.Date)
			assert.Equal(t, tt.wantCounters, d.Counters)
			assert.Equal(t, tt.wantItems, d.Items)
			assert.Equal(t, tt.wantRevenue, d.Revenue.String())
		})
	}
}

func TestFold_DateFromTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	e := events.Event{Type: events.OrderCreated, Timestamp: time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)}

	d, err := Fold(e, loc)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", d.Date)
}

func TestFold_Rejects(t *testing.T) {
	tests := map[string]events.Event{
		"no date":        {Type: events.OrderCreated},
		"bad date":       {Type: events.OrderCreated, Date: "14/03/2026"},
		"bad amount":     {Type: events.OrderPaid, Date: "2026-03-14", Amount: "lots"},
		"missing amount": {Type: events.OrderPaid, Date: "2026-03-14"},
	}
	for name, e := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Fold(e, time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestFold_ItemFallsBackToMenuItemID(t *testing.T) {
	e := events.Event{Type: events.OrderCreated, Date: "2026-03-14", Items: []events.Item{
		{MenuItemID: "item-1", Quantity: 3},
		{Name: "Ghost", Quantity: 0},
	}}

	d, err := Fold(e, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"item-1": 3}, d.Items)
}
