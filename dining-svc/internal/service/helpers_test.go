package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tableside/dining-svc/internal/domain"
	"tableside/dining-svc/internal/service"
	"tableside/dining-svc/internal/storage"
	"tableside/pkg/events"
	"tableside/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	ctx = context.Background()

	// noon UTC keeps "today" stable in the restaurant zone used below
	now      = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	today    = "2026-03-14"
	tomorrow = "2026-03-15"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fixture struct {
	store      *storage.MemoryStore
	repos      service.Repositories
	clock      *service.FixedClock
	published  *recordingPublisher
	reconciler *service.Reconciler

	tables       *service.TableService
	orders       *service.OrderService
	reservations *service.ReservationService
	menu         *service.MenuService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, nil)
}

// newFixtureWith builds every service on one in-memory store. A nil
// publisher records events in f.published.
func newFixtureWith(t *testing.T, publisher service.EventPublisher) *fixture {
	t.Helper()

	f := &fixture{
		store:     storage.NewMemoryStore(),
		clock:     service.NewFixedClock(now),
		published: &recordingPublisher{},
	}
	if publisher == nil {
		publisher = f.published
	}
	f.repos = storage.Repositories(f.store)
	log := logger.Discard()

	f.reconciler = service.NewReconciler(f.repos, f.clock, time.UTC)
	f.tables = service.NewTableService(f.repos, f.reconciler, service.DefaultQRGenerator{BaseURL: "http://example.test"}, publisher, f.clock, log)
	f.orders = service.NewOrderService(f.repos, f.reconciler, publisher, f.clock, 5*time.Minute, log)
	f.reservations = service.NewReservationService(f.repos, f.reconciler, publisher, f.clock, log)
	f.menu = service.NewMenuService(f.repos, nil, nil, f.clock, log)
	return f
}

func (f *fixture) table(t *testing.T, number, capacity int) *domain.Table {
	t.Helper()
	table := &domain.Table{Number: number, Capacity: capacity}
	require.NoError(t, f.tables.Create(ctx, table))
	return table
}

func (f *fixture) reload(t *testing.T, table *domain.Table) *domain.Table {
	t.Helper()
	got, err := f.tables.Get(ctx, table.ID)
	require.NoError(t, err)
	return got
}

func (f *fixture) user(t *testing.T, externalID string) *domain.User {
	t.Helper()
	user := &domain.User{ExternalID: externalID, Email: externalID + "@example.test", CreatedAt: now, UpdatedAt: now}
	user.ID = uuid.New()
	require.NoError(t, f.store.UpsertUser(ctx, user))
	return user
}

func (f *fixture) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	category := &domain.Category{Name: name}
	require.NoError(t, f.menu.CreateCategory(ctx, category))
	return category
}

func (f *fixture) menuItem(t *testing.T, category *domain.Category, name, price string, prepMinutes int) *domain.MenuItem {
	t.Helper()
	item := &domain.MenuItem{
		Name:        name,
		Price:       domain.MustMoney(price),
		CategoryID:  category.ID,
		IsAvailable: true,
	}
	if prepMinutes > 0 {
		item.PreparationMinutes = &prepMinutes
	}
	require.NoError(t, f.menu.CreateItem(ctx, item))
	return item
}

func (f *fixture) order(t *testing.T, buyer *domain.User, table *domain.Table, lines ...domain.OrderItemInput) *domain.Order {
	t.Helper()
	order, err := f.orders.Create(ctx, domain.CreateOrderInput{
		Buyer:      buyer.ExternalID,
		Table:      table.ID,
		OrderItems: lines,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) reservation(t *testing.T, table *domain.Table, user *domain.User, guests int, date string) *domain.Reservation {
	t.Helper()
	res, err := f.reservations.Create(ctx, reservationInput(table, user, guests, date))
	require.NoError(t, err)
	return res
}

func reservationInput(table *domain.Table, user *domain.User, guests int, date string) domain.CreateReservationInput {
	return domain.CreateReservationInput{
		TableID:    table.ID,
		UserID:     user.ExternalID,
		GuestCount: guests,
		Date:       date,
		Time:       "19:30",
		GuestInfo:  domain.GuestInfo{Name: "Ada Lovelace", Phone: "+44 20 7946 0000", Email: "ada@example.test"},
	}
}

func line(item *domain.MenuItem, quantity int) domain.OrderItemInput {
	return domain.OrderItemInput{MenuItemID: item.ID, Quantity: quantity}
}

func ptr[T any](v T) *T { return &v }
