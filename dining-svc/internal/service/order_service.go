package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tableside/dining-svc/internal/domain"
	"tableside/pkg/events"

	"github.com/google/uuid"
)

// TableAction is what staff ask to happen to the table alongside an order
// status change. Orders never reconcile their table on their own.
type TableAction string

const (
	TableActionNone    TableAction = ""
	TableActionSync    TableAction = "sync"
	TableActionRelease TableAction = "release"
)

func (a TableAction) Valid() bool {
	switch a {
	case TableActionNone, TableActionSync, TableActionRelease:
		return true
	}
	return false
}

type OrderService struct {
	store        Store
	orders       OrderRepository
	tables       TableRepository
	menu         MenuRepository
	users        UserRepository
	reconciler   *Reconciler
	clock        Clock
	cancelWindow time.Duration
	notifier
}

func NewOrderService(repos Repositories, reconciler *Reconciler, publisher EventPublisher, clock Clock, cancelWindow time.Duration, logger *slog.Logger) *OrderService {
	return &OrderService{
		store:        repos.Store,
		orders:       repos.Orders,
		tables:       repos.Tables,
		menu:         repos.Menu,
		users:        repos.Users,
		reconciler:   reconciler,
		clock:        clock,
		cancelWindow: cancelWindow,
		notifier:     notifier{publisher: publisher, logger: logger},
	}
}

func (s *OrderService) Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	if in.Buyer == "" {
		return nil, domain.Invalid("buyer is required")
	}
	if in.Table == uuid.Nil {
		return nil, domain.Invalid("table is required")
	}
	if len(in.OrderItems) == 0 {
		return nil, domain.Invalid("order must contain at least one item")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	buyer, err := s.users.GetUserByExternalID(ctx, in.Buyer)
	if err != nil {
		return nil, err
	}
	table, err := s.tables.GetTable(ctx, in.Table)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.OrderItems))
	for _, line := range in.OrderItems {
		menuItem, err := s.menu.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, domain.Invalid("menu item %q is not available", menuItem.Name)
		}
		item := domain.OrderItem{
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		}
		if menuItem.PreparationMinutes != nil {
			minutes := *menuItem.PreparationMinutes
			item.EstimatedServeMinutes = &minutes
		}
		items = append(items, item)
	}

	now := s.clock.Now()
	tableID := table.ID
	order := &domain.Order{
		ID:        uuid.New(),
		BuyerID:   buyer.ID,
		TableID:   &tableID,
		Items:     items,
		Status:    domain.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.Recalculate()

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	ordersTotal.WithLabelValues("created").Inc()
	s.publish(ctx, orderEvent(events.OrderCreated, order, now, s.reconciler.Location()))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	for _, status := range filter.Statuses {
		if !status.Valid() {
			return nil, domain.Invalid("unknown order status %q", status)
		}
	}
	return s.orders.ListOrders(ctx, filter)
}

func (s *OrderService) ListGrouped(ctx context.Context, filter domain.OrderFilter) ([]domain.TableOrderGroup, error) {
	orders, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return GroupOrdersByTable(orders), nil
}

// TableOrders lists the orders of the table's current seating.
func (s *OrderService) TableOrders(ctx context.Context, tableID uuid.UUID) ([]domain.Order, error) {
	table, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	since := table.ServiceStartedAt
	return s.orders.ListOrders(ctx, domain.OrderFilter{TableID: &tableID, Since: &since})
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, action TableAction) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Invalid("unknown order status %q", status)
	}
	if !action.Valid() {
		return nil, domain.Invalid("table_action must be one of sync release")
	}

	var (
		order    *domain.Order
		prev     domain.OrderStatus
		released *domain.Table
	)
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		order, prev, err = s.transition(ctx, id, status)
		if err != nil {
			return err
		}
		if order.TableID == nil {
			return nil
		}

		switch action {
		case TableActionSync:
			_, err = s.reconciler.OrderStatusChanged(ctx, *order.TableID, order)
		case TableActionRelease:
			released, err = s.reconciler.MarkAvailable(ctx, *order.TableID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, order, prev)
	if released != nil {
		s.publish(ctx, tableReleasedEvent(released, s.clock.Now(), s.reconciler.Location()))
	}
	return order, nil
}

// CancelByCustomer lets the buyer cancel their own order during the grace
// period after it was placed.
func (s *OrderService) CancelByCustomer(ctx context.Context, id uuid.UUID, buyerExternalID string) (*domain.Order, error) {
	if buyerExternalID == "" {
		return nil, domain.Invalid("buyer is required")
	}
	buyer, err := s.users.GetUserByExternalID(ctx, buyerExternalID)
	if err != nil {
		return nil, err
	}

	var (
		order *domain.Order
		prev  domain.OrderStatus
	)
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.orders.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if current.BuyerID != buyer.ID {
			return domain.ErrNotOrderOwner
		}
		if s.clock.Now().Sub(current.CreatedAt) > s.cancelWindow {
			return fmt.Errorf("%w: cancellation is only possible within %s of ordering",
				domain.ErrCancelWindowElapsed, s.cancelWindow)
		}
		order, prev, err = s.transition(ctx, id, domain.OrderCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, order, prev)
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, domain.OrderStatus, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, "", err
	}
	prev := order.Status
	if !prev.CanTransitionTo(status) {
		ordersTotal.WithLabelValues("rejected").Inc()
		return nil, "", fmt.Errorf("%w: order %s cannot move from %s to %s",
			domain.ErrInvalidTransition, id, prev, status)
	}

	order.Status = status
	order.UpdatedAt = s.clock.Now()
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, "", fmt.Errorf("update order %s: %w", id, err)
	}
	return order, prev, nil
}

func (s *OrderService) afterTransition(ctx context.Context, order *domain.Order, prev domain.OrderStatus) {
	ordersTotal.WithLabelValues(string(order.Status)).Inc()
	event := orderEvent(events.OrderStatusChanged, order, order.UpdatedAt, s.reconciler.Location())
	event.PrevStatus = string(prev)
	s.publish(ctx, event)
}

// MarkPaid is one-way and idempotent: paying an already paid order returns it
// unchanged and publishes nothing.
func (s *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var (
		order       *domain.Order
		alreadyPaid bool
	)
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if order.IsPaid {
			alreadyPaid = true
			return nil
		}
		if order.Status == domain.OrderCancelled {
			return fmt.Errorf("%w: order %s is cancelled", domain.ErrInvalidTransition, id)
		}

		now := s.clock.Now()
		order.IsPaid = true
		order.PaidAt = &now
		order.UpdatedAt = now
		if err := s.orders.UpdateOrder(ctx, order); err != nil {
			return fmt.Errorf("update order %s: %w", id, err)
		}
		if order.TableID != nil {
			if _, err := s.reconciler.OrderPaid(ctx, *order.TableID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if alreadyPaid {
		return order, nil
	}

	ordersTotal.WithLabelValues("paid").Inc()
	s.publish(ctx, orderEvent(events.OrderPaid, order, *order.PaidAt, s.reconciler.Location()))
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return err
	}
	ordersTotal.WithLabelValues("deleted").Inc()
	return nil
}

// GroupOrdersByTable builds the per-table dashboard rows. Totals skip
// cancelled orders; the display status is the least advanced live status.
func GroupOrdersByTable(orders []domain.Order) []domain.TableOrderGroup {
	var (
		groups []domain.TableOrderGroup
		index  = map[uuid.UUID]int{}
	)

	for _, order := range orders {
		if order.TableID == nil {
			continue
		}
		i, ok := index[*order.TableID]
		if !ok {
			i = len(groups)
			index[*order.TableID] = i
			groups = append(groups, domain.TableOrderGroup{TableID: *order.TableID})
		}
		g := &groups[i]
		g.Orders = append(g.Orders, order)
		if order.Status != domain.OrderCancelled {
			g.TotalAmount = g.TotalAmount.Add(order.TotalAmount)
			g.Quantity += order.Quantity
		}
	}

	for i := range groups {
		groups[i].Status = displayStatus(groups[i].Orders)
		groups[i].IsPaid = allPaid(groups[i].Orders)
	}
	return groups
}

var displayPrecedence = []domain.OrderStatus{
	domain.OrderPending,
	domain.OrderPreparing,
	domain.OrderServed,
}

func displayStatus(orders []domain.Order) domain.OrderStatus {
	for _, status := range displayPrecedence {
		for _, o := range orders {
			if o.Status == status {
				return status
			}
		}
	}
	return domain.OrderCancelled
}

func tableReleasedEvent(table *domain.Table, at time.Time, loc *time.Location) events.Event {
	e := events.New(events.TableReleased, at)
	e.TableID = table.ID.String()
	e.Status = string(table.Status)
	e.Date = at.In(loc).Format(domain.DateLayout)
	return e
}
