// Package events defines the messages dining-svc publishes on kafka.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderPaid          = "order.paid"
	ReservationCreated = "reservation.created"
	ReservationUpdated = "reservation.updated"
	TableReleased      = "table.released"
)

type Item struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
}

type Event struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	TableID       string    `json:"table_id,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	ReservationID string    `json:"reservation_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	PrevStatus    string    `json:"prev_status,omitempty"`
	Amount        string    `json:"amount,omitempty"`
	Quantity      int       `json:"quantity,omitempty"`
	Items         []Item    `json:"items,omitempty"`
	Date          string    `json:"date,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func New(eventType string, at time.Time) Event {
	return Event{ID: uuid.New(), Type: eventType, Timestamp: at}
}

// Key partitions messages by table so one table's events stay ordered.
func (e Event) Key() []byte {
	if e.TableID != "" {
		return []byte(e.TableID)
	}
	return []byte(e.ID.String())
}

func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}
