package service

import (
	"context"
	"fmt"
	"log/slog"

	"tableside/dining-svc/internal/domain"
	"tableside/pkg/events"

	"github.com/google/uuid"
)

type ReservationService struct {
	store        Store
	reservations ReservationRepository
	tables       TableRepository
	users        UserRepository
	reconciler   *Reconciler
	clock        Clock
	notifier
}

func NewReservationService(repos Repositories, reconciler *Reconciler, publisher EventPublisher, clock Clock, logger *slog.Logger) *ReservationService {
	return &ReservationService{
		store:        repos.Store,
		reservations: repos.Reservations,
		tables:       repos.Tables,
		users:        repos.Users,
		reconciler:   reconciler,
		clock:        clock,
		notifier:     notifier{publisher: publisher, logger: logger},
	}
}

// Create books a table. The reservation and the table flip are written in
// one transaction; nothing is stored when the party does not fit.
func (s *ReservationService) Create(ctx context.Context, in domain.CreateReservationInput) (*domain.Reservation, error) {
	if in.TableID == uuid.Nil {
		return nil, domain.Invalid("table_id is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var res *domain.Reservation
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		table, err := s.tables.LockTable(ctx, in.TableID)
		if err != nil {
			return err
		}
		user, err := s.users.GetUserByExternalID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if err := checkCapacity(in.GuestCount, table); err != nil {
			return err
		}

		now := s.clock.Now()
		res = &domain.Reservation{
			ID:              uuid.New(),
			TableID:         table.ID,
			UserID:          user.ID,
			GuestCount:      in.GuestCount,
			GuestInfo:       in.GuestInfo,
			ReservationDate: in.Date,
			ReservationTime: in.Time,
			SpecialRequests: in.SpecialRequests,
			Status:          domain.ReservationPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.reservations.CreateReservation(ctx, res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		_, err = s.reconciler.ReservationCreated(ctx, res)
		return err
	})
	if err != nil {
		reservationsTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	reservationsTotal.WithLabelValues("created").Inc()
	s.publish(ctx, reservationEvent(events.ReservationCreated, res, res.CreatedAt, s.reconciler.Location()))
	return res, nil
}

func (s *ReservationService) Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

func (s *ReservationService) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	if filter.Date != "" {
		if err := validateVar("date", filter.Date, "datetime="+domain.DateLayout); err != nil {
			return nil, err
		}
	}
	return s.reservations.ListReservations(ctx, filter)
}

// Update merges the supplied fields. Capacity is re-checked whenever the
// party size or the table changes.
func (s *ReservationService) Update(ctx context.Context, id uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.Invalid("unknown reservation status %q", *patch.Status)
	}

	var (
		old     domain.Reservation
		updated domain.Reservation
	)
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.reservations.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		old = *current

		if patch.Status != nil && *patch.Status != old.Status && !old.Status.CanTransitionTo(*patch.Status) {
			return fmt.Errorf("%w: reservation %s cannot move from %s to %s",
				domain.ErrInvalidTransition, id, old.Status, *patch.Status)
		}

		updated = old
		patch.Apply(&updated)

		if patch.GuestCount != nil || patch.Retargets(old.TableID) {
			table, err := s.tables.LockTable(ctx, updated.TableID)
			if err != nil {
				return err
			}
			if err := checkCapacity(updated.GuestCount, table); err != nil {
				return err
			}
		}

		updated.UpdatedAt = s.clock.Now()
		if err := s.reservations.UpdateReservation(ctx, &updated); err != nil {
			return fmt.Errorf("update reservation %s: %w", id, err)
		}
		return s.reconciler.ReservationUpdated(ctx, old, updated)
	})
	if err != nil {
		reservationsTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	reservationsTotal.WithLabelValues("updated").Inc()
	event := reservationEvent(events.ReservationUpdated, &updated, updated.UpdatedAt, s.reconciler.Location())
	event.PrevStatus = string(old.Status)
	s.publish(ctx, event)
	return &updated, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	cancelled := domain.ReservationCancelled
	return s.Update(ctx, id, domain.ReservationPatch{Status: &cancelled})
}

func checkCapacity(guests int, table *domain.Table) error {
	if guests > table.Capacity {
		return fmt.Errorf("%w: %d guests for table %d seating %d",
			domain.ErrCapacityExceeded, guests, table.Number, table.Capacity)
	}
	return nil
}
