package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderServed    OrderStatus = "served"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderServed, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderServed, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Open() bool {
	return s == OrderPending || s == OrderPreparing
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderItem struct {
	MenuItemID            uuid.UUID `json:"menu_item_id"`
	Name                  string    `json:"name"`
	Price                 Money     `json:"price"`
	Quantity              int       `json:"quantity"`
	SpecialInstructions   string    `json:"special_instructions,omitempty"`
	EstimatedServeMinutes *int      `json:"estimated_serve_minutes,omitempty"`
}

type Order struct {
	ID          uuid.UUID   `json:"id"`
	BuyerID     uuid.UUID   `json:"buyer_id"`
	TableID     *uuid.UUID  `json:"table_id,omitempty"`
	Items       []OrderItem `json:"items"`
	TotalAmount Money       `json:"total_amount"`
	Quantity    int         `json:"quantity"`
	Status      OrderStatus `json:"status"`
	IsPaid      bool        `json:"is_paid"`
	PaidAt      *time.Time  `json:"paid_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Recalculate derives quantity and total from the line items.
func (o *Order) Recalculate() {
	var total Money
	quantity := 0
	for _, item := range o.Items {
		quantity += item.Quantity
		total = total.Add(item.Price.Times(item.Quantity))
	}
	o.Quantity = quantity
	o.TotalAmount = total
}

func (o *Order) TaxAmount() Money {
	return NewMoney(o.TotalAmount.Mul(TaxRate))
}

func (o *Order) GrandTotal() Money {
	return o.TotalAmount.Add(o.TaxAmount())
}

// EstimatedServeMinutes is the slowest line estimate, nil when none is known.
func (o *Order) EstimatedServeMinutes() *int {
	var longest *int
	for _, item := range o.Items {
		if item.EstimatedServeMinutes == nil {
			continue
		}
		if longest == nil || *item.EstimatedServeMinutes > *longest {
			v := *item.EstimatedServeMinutes
			longest = &v
		}
	}
	return longest
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		TaxAmount  Money `json:"tax_amount"`
		GrandTotal Money `json:"grand_total"`
	}{plain(o), o.TaxAmount(), o.GrandTotal()})
}

type OrderFilter struct {
	TableID  *uuid.UUID
	BuyerID  *uuid.UUID
	Statuses []OrderStatus
	Since    *time.Time
}

type OrderItemInput struct {
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	Quantity            int       `json:"quantity" validate:"min=1"`
	SpecialInstructions string    `json:"special_instructions" validate:"max=500"`
}

type CreateOrderInput struct {
	Buyer      string           `json:"buyer"`
	Table      uuid.UUID        `json:"table"`
	OrderItems []OrderItemInput `json:"order_items" validate:"dive"`
}

// TableOrderGroup is the per-table view used by the staff dashboard.
type TableOrderGroup struct {
	TableID     uuid.UUID   `json:"table_id"`
	Orders      []Order     `json:"orders"`
	TotalAmount Money       `json:"total_amount"`
	Quantity    int         `json:"quantity"`
	Status      OrderStatus `json:"status"`
	IsPaid      bool        `json:"is_paid"`
}
