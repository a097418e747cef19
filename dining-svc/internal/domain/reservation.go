package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Active reservations still hold their table.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID              uuid.UUID         `json:"id"`
	TableID         uuid.UUID         `json:"table_id"`
	UserID          uuid.UUID         `json:"user_id"`
	GuestCount      int               `json:"guest_count"`
	GuestInfo       GuestInfo         `json:"guest_info"`
	ReservationDate string            `json:"reservation_date"`
	ReservationTime string            `json:"reservation_time"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (r Reservation) IsOn(date string) bool {
	return r.ReservationDate == date
}

type CreateReservationInput struct {
	TableID         uuid.UUID `json:"table_id"`
	UserID          string    `json:"user_id" validate:"required"`
	GuestCount      int       `json:"guest_count" validate:"min=1"`
	Date            string    `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	Time            string    `json:"reservation_time" validate:"required,datetime=15:04"`
	GuestInfo       GuestInfo `json:"guest_info"`
	SpecialRequests string    `json:"special_requests" validate:"max=500"`
}

// ReservationPatch carries a partial update; nil fields are left alone.
type ReservationPatch struct {
	TableID         *uuid.UUID         `json:"table_id"`
	GuestCount      *int               `json:"guest_count" validate:"omitempty,min=1"`
	ReservationDate *string            `json:"reservation_date" validate:"omitempty,datetime=2006-01-02"`
	ReservationTime *string            `json:"reservation_time" validate:"omitempty,datetime=15:04"`
	GuestInfo       *GuestInfo         `json:"guest_info"`
	SpecialRequests *string            `json:"special_requests" validate:"omitempty,max=500"`
	Status          *ReservationStatus `json:"status"`
}

func (p ReservationPatch) Retargets(current uuid.UUID) bool {
	return p.TableID != nil && *p.TableID != current
}

func (p ReservationPatch) Apply(r *Reservation) {
	if p.TableID != nil {
		r.TableID = *p.TableID
	}
	if p.GuestCount != nil {
		r.GuestCount = *p.GuestCount
	}
	if p.ReservationDate != nil {
		r.ReservationDate = *p.ReservationDate
	}
	if p.ReservationTime != nil {
		r.ReservationTime = *p.ReservationTime
	}
	if p.GuestInfo != nil {
		r.GuestInfo = *p.GuestInfo
	}
	if p.SpecialRequests != nil {
		r.SpecialRequests = *p.SpecialRequests
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

type ReservationFilter struct {
	TableID  *uuid.UUID
	UserID   *uuid.UUID
	Date     string
	Statuses []ReservationStatus
}
