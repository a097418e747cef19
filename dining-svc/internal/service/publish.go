package service

import (
	"context"
	"log/slog"
	"time"

	"tableside/dining-svc/internal/domain"
	"tableside/pkg/events"
)

// notifier publishes best effort: a failed publish is logged and counted but
// never fails the request that produced it.
type notifier struct {
	publisher EventPublisher
	logger    *slog.Logger
}

func (n notifier) publish(ctx context.Context, event events.Event) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		publishFailuresTotal.Inc()
		n.logger.WarnContext(ctx, "publish event failed",
			"type", event.Type, "event_id", event.ID, "error", err)
	}
}

// Event dates are the restaurant-local day the event happened on.
func orderEvent(eventType string, order *domain.Order, at time.Time, loc *time.Location) events.Event {
	e := events.New(eventType, at)
	e.OrderID = order.ID.String()
	if order.TableID != nil {
		e.TableID = order.TableID.String()
	}
	e.Status = string(order.Status)
	e.Amount = order.TotalAmount.String()
	e.Quantity = order.Quantity
	e.Date = at.In(loc).Format(domain.DateLayout)
	e.Items = make([]events.Item, 0, len(order.Items))
	for _, item := range order.Items {
		e.Items = append(e.Items, events.Item{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price.String(),
		})
	}
	return e
}

func reservationEvent(eventType string, res *domain.Reservation, at time.Time, loc *time.Location) events.Event {
	e := events.New(eventType, at)
	e.ReservationID = res.ID.String()
	e.TableID = res.TableID.String()
	e.Status = string(res.Status)
	e.Quantity = res.GuestCount
	e.Date = at.In(loc).Format(domain.DateLayout)
	return e
}
