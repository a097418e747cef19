package service

import (
	"errors"
	"fmt"
	"time"

	"tableside/pkg/events"
	"tableside/pkg/statskeys"
	"tableside/stats-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var errNoDate = errors.New("event has neither date nor timestamp")

// Fold turns an event into the aggregate changes it implies. Event types
// that do not feed the dashboard yield an empty delta.
func Fold(e events.Event, loc *time.Location) (domain.Delta, error) {
	date, err := eventDate(e, loc)
	if err != nil {
		return domain.Delta{}, err
	}
	d := domain.NewDelta(date)

	switch e.Type {
	case events.OrderCreated:
		d.Counters[statskeys.Orders] = 1
		addItems(d, e.Items, 1)
	case events.OrderStatusChanged:
		switch e.Status {
		case "cancelled":
			d.Counters[statskeys.Cancelled] = 1
			addItems(d, e.Items, -1)
		case "served":
			d.Counters[statskeys.Served] = 1
		}
	case events.OrderPaid:
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return domain.Delta{}, fmt.Errorf("order %s amount %q: %w", e.OrderID, e.Amount, err)
		}
		d.Counters[statskeys.Paid] = 1
		d.Revenue = amount
	case events.ReservationCreated:
		d.Counters[statskeys.Reservations] = 1
	case events.TableReleased:
		d.Counters[statskeys.Released] = 1
	}
	return d, nil
}

func eventDate(e events.Event, loc *time.Location) (string, error) {
	if e.Date != "" {
		if _, err := time.Parse(statskeys.DateLayout, e.Date); err != nil {
			return "", fmt.Errorf("event date %q: %w", e.Date, err)
		}
		return e.Date, nil
	}
	if e.Timestamp.IsZero() {
		return "", errNoDate
	}
	if loc == nil {
		loc = time.UTC
	}
	return e.Timestamp.In(loc).Format(statskeys.DateLayout), nil
}

func addItems(d domain.Delta, items []events.Item, sign int64) {
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.MenuItemID
		}
		if name == "" || item.Quantity <= 0 {
			continue
		}
		d.Items[name] += sign * int64(item.Quantity)
	}
}
