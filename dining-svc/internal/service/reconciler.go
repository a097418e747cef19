package service

import (
	"context"
	"fmt"
	"time"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

// Reconciler keeps a table's availability, reservation and payment flags in
// line with the reservations and orders that touch it. Every method re-reads
// the table under lock and writes it back through the ctx it is given, so
// callers run it inside Store.RunInTx together with their own writes.
type Reconciler struct {
	tables       TableRepository
	orders       OrderRepository
	reservations ReservationRepository
	clock        Clock
	loc          *time.Location
}

func NewReconciler(repos Repositories, clock Clock, loc *time.Location) *Reconciler {
	if loc == nil {
		loc = time.Local
	}
	return &Reconciler{
		tables:       repos.Tables,
		orders:       repos.Orders,
		reservations: repos.Reservations,
		clock:        clock,
		loc:          loc,
	}
}

// Today is the current restaurant-local date.
func (r *Reconciler) Today() string {
	return r.clock.Now().In(r.loc).Format(domain.DateLayout)
}

func (r *Reconciler) Location() *time.Location { return r.loc }

func (r *Reconciler) ReservationCreated(ctx context.Context, res *domain.Reservation) (*domain.Table, error) {
	table, err := r.tables.LockTable(ctx, res.TableID)
	if err != nil {
		return nil, err
	}
	if !res.IsOn(r.Today()) || !res.Status.Active() {
		return table, nil
	}

	table.Reserve(res.GuestInfo)
	return table, r.write(ctx, table, "reservation_created")
}

// ReservationUpdated compares the old and new snapshot of one reservation.
// A reservation moved to another table releases the old one and claims the new one.
func (r *Reconciler) ReservationUpdated(ctx context.Context, old, updated domain.Reservation) error {
	today := r.Today()

	if old.TableID != updated.TableID {
		if old.IsOn(today) {
			if err := r.release(ctx, old.TableID, today, updated.ID); err != nil {
				return err
			}
		}
		table, err := r.tables.LockTable(ctx, updated.TableID)
		if err != nil {
			return err
		}
		if updated.IsOn(today) && updated.Status.Active() {
			table.Reserve(updated.GuestInfo)
			return r.write(ctx, table, "reservation_updated")
		}
		return nil
	}

	oldToday, newToday := old.IsOn(today), updated.IsOn(today)
	switch {
	case newToday && updated.Status.Active():
		table, err := r.tables.LockTable(ctx, updated.TableID)
		if err != nil {
			return err
		}
		table.Reserve(updated.GuestInfo)
		return r.write(ctx, table, "reservation_updated")
	case newToday, oldToday:
		return r.release(ctx, updated.TableID, today, updated.ID)
	default:
		_, err := r.tables.LockTable(ctx, updated.TableID)
		return err
	}
}

// release reverts a table to available unless another active reservation
// still claims it today.
func (r *Reconciler) release(ctx context.Context, tableID uuid.UUID, today string, reservationID uuid.UUID) error {
	table, err := r.tables.LockTable(ctx, tableID)
	if err != nil {
		return err
	}

	claims, err := r.reservations.CountActiveReservations(ctx, tableID, today, reservationID)
	if err != nil {
		return fmt.Errorf("count reservations for table %s: %w", tableID, err)
	}
	if claims > 0 {
		return nil
	}

	table.ClearReservation()
	return r.write(ctx, table, "reservation_released")
}

func (r *Reconciler) MarkAvailable(ctx context.Context, tableID uuid.UUID) (*domain.Table, error) {
	table, err := r.tables.LockTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	table.Free(r.clock.Now())
	return table, r.write(ctx, table, "marked_available")
}

func (r *Reconciler) MarkUnavailable(ctx context.Context, tableID uuid.UUID) (*domain.Table, error) {
	table, err := r.tables.LockTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	table.Occupy()
	return table, r.write(ctx, table, "marked_unavailable")
}

// OrderPaid sets the table paid flag when every non-cancelled order of the
// current seating is paid.
func (r *Reconciler) OrderPaid(ctx context.Context, tableID uuid.UUID) (*domain.Table, error) {
	table, err := r.tables.LockTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	since := table.ServiceStartedAt
	orders, err := r.orders.ListOrders(ctx, domain.OrderFilter{TableID: &tableID, Since: &since})
	if err != nil {
		return nil, fmt.Errorf("list orders for table %s: %w", tableID, err)
	}

	table.IsPaid = allPaid(orders)
	return table, r.write(ctx, table, "order_paid")
}

func (r *Reconciler) OrderStatusChanged(ctx context.Context, tableID uuid.UUID, order *domain.Order) (*domain.Table, error) {
	table, err := r.tables.LockTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	table.FollowOrder(order)
	return table, r.write(ctx, table, "order_status")
}

func (r *Reconciler) write(ctx context.Context, table *domain.Table, trigger string) error {
	table.UpdatedAt = r.clock.Now()
	if err := r.tables.UpdateTable(ctx, table); err != nil {
		return fmt.Errorf("update table %s: %w", table.ID, err)
	}
	reconciliationsTotal.WithLabelValues(trigger).Inc()
	return nil
}

// allPaid reports whether at least one order counts and all counted orders
// are paid. Cancelled orders are ignored.
func allPaid(orders []domain.Order) bool {
	counted := 0
	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			continue
		}
		if !o.IsPaid {
			return false
		}
		counted++
	}
	return counted > 0
}
