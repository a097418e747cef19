package domain

import (
	"time"

	"github.com/google/uuid"
)

type Location string

const (
	LocationIndoor  Location = "indoor"
	LocationOutdoor Location = "outdoor"
)

// TableStatus doubles as the status of the order currently being served.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableReserved  TableStatus = "reserved"
	TablePending   TableStatus = "pending"
	TablePreparing TableStatus = "preparing"
	TableServed    TableStatus = "served"
	TableCancelled TableStatus = "cancelled"
)

type GuestInfo struct {
	Name  string `json:"name" validate:"required,max=120"`
	Phone string `json:"phone" validate:"required,max=40"`
	Email string `json:"email" validate:"omitempty,email"`
}

type Table struct {
	ID                    uuid.UUID   `json:"id"`
	Number                int         `json:"number" validate:"min=1"`
	Capacity              int         `json:"capacity" validate:"min=1"`
	Location              Location    `json:"location" validate:"oneof=indoor outdoor"`
	IsAvailable           bool        `json:"is_available"`
	IsReserved            bool        `json:"is_reserved"`
	IsPaid                bool        `json:"is_paid"`
	Status                TableStatus `json:"status"`
	ReservedBy            *GuestInfo  `json:"reserved_by,omitempty"`
	EstimatedServeMinutes *int        `json:"estimated_serve_minutes,omitempty"`
	ServiceStartedAt      time.Time   `json:"service_started_at"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

type TablePatch struct {
	Number   *int      `json:"number" validate:"omitempty,min=1"`
	Capacity *int      `json:"capacity" validate:"omitempty,min=1"`
	Location *Location `json:"location" validate:"omitempty,oneof=indoor outdoor"`
}

func (p TablePatch) Apply(t *Table) {
	if p.Number != nil {
		t.Number = *p.Number
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
}

// Reserve holds the table for a guest arriving today.
func (t *Table) Reserve(guest GuestInfo) {
	t.IsAvailable = false
	t.IsReserved = true
	t.Status = TableReserved
	snapshot := guest
	t.ReservedBy = &snapshot
}

// ClearReservation drops a reservation hold without ending the seating.
func (t *Table) ClearReservation() {
	t.IsAvailable = true
	t.IsReserved = false
	t.Status = TableAvailable
	t.ReservedBy = nil
}

// Free ends the current seating and starts a new one at now.
func (t *Table) Free(now time.Time) {
	t.IsAvailable = true
	t.IsReserved = false
	t.IsPaid = false
	t.Status = TableAvailable
	t.ReservedBy = nil
	t.EstimatedServeMinutes = nil
	t.ServiceStartedAt = now
}

func (t *Table) Occupy() {
	t.IsAvailable = false
	t.IsReserved = true
	t.IsPaid = false
	t.Status = TableReserved
}

// FollowOrder mirrors an order's progress on the table.
func (t *Table) FollowOrder(o *Order) {
	t.Status = TableStatus(o.Status)
	switch o.Status {
	case OrderPending, OrderPreparing:
		t.IsAvailable = false
		t.EstimatedServeMinutes = o.EstimatedServeMinutes()
	case OrderServed, OrderCancelled:
		t.EstimatedServeMinutes = nil
	}
}
