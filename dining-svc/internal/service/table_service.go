package service

import (
	"context"
	"fmt"
	"log/slog"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

type TableService struct {
	store      Store
	tables       TableRepository
	orders       OrderRepository
	reservations ReservationRepository
	reconciler *Reconciler
	qrEncoder  QRGenerator
	clock      Clock
	notifier
}

func NewTableService(repos Repositories, reconciler *Reconciler, qr QRGenerator, publisher EventPublisher, clock Clock, logger *slog.Logger) *TableService {
	return &TableService{
		store:      repos.Store,
		tables:       repos.Tables,
		orders:       repos.Orders,
		reservations: repos.Reservations,
		reconciler:   reconciler,
		qrEncoder:    qr,
		clock:        clock,
		notifier:     notifier{publisher: publisher, logger: logger},
	}
}

func (s *TableService) Create(ctx context.Context, table *domain.Table) error {
	if table.Location == "" {
		table.Location = domain.LocationIndoor
	}
	if err := validateStruct(table); err != nil {
		return err
	}

	now := s.clock.Now()
	table.ID = uuid.New()
	table.IsAvailable = true
	table.IsReserved = false
	table.IsPaid = false
	table.Status = domain.TableAvailable
	table.ReservedBy = nil
	table.EstimatedServeMinutes = nil
	table.ServiceStartedAt = now
	table.CreatedAt = now
	table.UpdatedAt = now
	return s.tables.CreateTable(ctx, table)
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.tables.ListTables(ctx)
}

func (s *TableService) Get(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	return s.tables.GetTable(ctx, id)
}

func (s *TableService) Update(ctx context.Context, id uuid.UUID, patch domain.TablePatch) (*domain.Table, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	var table *domain.Table
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		table, err = s.tables.LockTable(ctx, id)
		if err != nil {
			return err
		}
		if patch.Capacity != nil {
			if err := s.checkBookedGuests(ctx, id, *patch.Capacity); err != nil {
				return err
			}
		}
		patch.Apply(table)
		table.UpdatedAt = s.clock.Now()
		return s.tables.UpdateTable(ctx, table)
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// checkBookedGuests keeps every active reservation within the new capacity.
func (s *TableService) checkBookedGuests(ctx context.Context, id uuid.UUID, capacity int) error {
	booked, err := s.reservations.ListReservations(ctx, domain.ReservationFilter{
		TableID:  &id,
		Statuses: []domain.ReservationStatus{domain.ReservationPending, domain.ReservationConfirmed},
	})
	if err != nil {
		return fmt.Errorf("list reservations: %w", err)
	}
	for _, r := range booked {
		if r.GuestCount > capacity {
			return fmt.Errorf("%w: reservation %s has %d guests", domain.ErrCapacityExceeded, r.ID, r.GuestCount)
		}
	}
	return nil
}

// Delete refuses while orders are still being worked on. Older orders keep
// their snapshot and lose the table reference.
func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.tables.LockTable(ctx, id); err != nil {
			return err
		}
		open, err := s.orders.CountOpenOrders(ctx, id)
		if err != nil {
			return fmt.Errorf("count open orders: %w", err)
		}
		if open > 0 {
			return fmt.Errorf("%w: %d orders still pending or preparing", domain.ErrTableInUse, open)
		}
		return s.tables.DeleteTable(ctx, id)
	})
}

// MarkAvailable frees the table after service and starts a new seating.
func (s *TableService) MarkAvailable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	var table *domain.Table
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		table, err = s.reconciler.MarkAvailable(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, tableReleasedEvent(table, table.UpdatedAt, s.reconciler.Location()))
	return table, nil
}

func (s *TableService) MarkUnavailable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	var table *domain.Table
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		table, err = s.reconciler.MarkUnavailable(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// QRCode renders the link customers scan to open the menu for this table.
func (s *TableService) QRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := s.tables.GetTable(ctx, id); err != nil {
		return nil, err
	}
	png, err := s.qrEncoder.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code for table %s: %w", id, err)
	}
	return png, nil
}
