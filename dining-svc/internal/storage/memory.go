package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. It backs local demos
// (STORE_BACKEND=memory) and the service tests. Transactions are serialized
// with every other write and rolled back by restoring a snapshot.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	tables       map[uuid.UUID]domain.Table
	orders       map[uuid.UUID]domain.Order
	reservations map[uuid.UUID]domain.Reservation
	menu         map[uuid.UUID]domain.MenuItem
	categories   map[uuid.UUID]domain.Category
	users        map[uuid.UUID]domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:       map[uuid.UUID]domain.Table{},
		orders:       map[uuid.UUID]domain.Order{},
		reservations: map[uuid.UUID]domain.Reservation{},
		menu:         map[uuid.UUID]domain.MenuItem{},
		categories:   map[uuid.UUID]domain.Category{},
		users:        map[uuid.UUID]domain.User{},
	}
}

type memTxKey struct{}

type memSnapshot struct {
	tables       map[uuid.UUID]domain.Table
	orders       map[uuid.UUID]domain.Order
	reservations map[uuid.UUID]domain.Reservation
	menu         map[uuid.UUID]domain.MenuItem
	categories   map[uuid.UUID]domain.Category
	users        map[uuid.UUID]domain.User
}

func (m *MemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// lockWrite takes the store lock for a single write. Outside a transaction
// it also waits for txMu so a rollback cannot erase the write.
func (m *MemoryStore) lockWrite(ctx context.Context) func() {
	inTx := ctx.Value(memTxKey{}) != nil
	if !inTx {
		m.txMu.Lock()
	}
	m.mu.Lock()
	return func() {
		m.mu.Unlock()
		if !inTx {
			m.txMu.Unlock()
		}
	}
}

func (m *MemoryStore) snapshot() memSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memSnapshot{
		tables:       copyMap(m.tables),
		orders:       copyMap(m.orders),
		reservations: copyMap(m.reservations),
		menu:         copyMap(m.menu),
		categories:   copyMap(m.categories),
		users:        copyMap(m.users),
	}
}

func (m *MemoryStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = s.tables
	m.orders = s.orders
	m.reservations = s.reservations
	m.menu = s.menu
	m.categories = s.categories
	m.users = s.users
}

func copyMap[V any](in map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// tables

func (m *MemoryStore) CreateTable(ctx context.Context, table *domain.Table) error {
	defer m.lockWrite(ctx)()
	if err := m.checkTableNumber(table.ID, table.Number); err != nil {
		return err
	}
	m.tables[table.ID] = *table
	return nil
}

func (m *MemoryStore) checkTableNumber(id uuid.UUID, number int) error {
	for _, t := range m.tables {
		if t.Number == number && t.ID != id {
			return domain.Invalid("table number %d already exists", number)
		}
	}
	return nil
}

func (m *MemoryStore) ListTables(_ context.Context) ([]domain.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tables := make([]domain.Table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
	return tables, nil
}

func (m *MemoryStore) GetTable(_ context.Context, id uuid.UUID) (*domain.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, domain.NotFound("table", id)
	}
	return &t, nil
}

// LockTable needs no row lock: transactions are already serialized.
func (m *MemoryStore) LockTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	return m.GetTable(ctx, id)
}

func (m *MemoryStore) UpdateTable(ctx context.Context, table *domain.Table) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.tables[table.ID]; !ok {
		return domain.NotFound("table", table.ID)
	}
	if err := m.checkTableNumber(table.ID, table.Number); err != nil {
		return err
	}
	m.tables[table.ID] = *table
	return nil
}

func (m *MemoryStore) DeleteTable(ctx context.Context, id uuid.UUID) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.tables[id]; !ok {
		return domain.NotFound("table", id)
	}
	delete(m.tables, id)
	for oid, o := range m.orders {
		if o.TableID != nil && *o.TableID == id {
			o.TableID = nil
			m.orders[oid] = o
		}
	}
	for rid, r := range m.reservations {
		if r.TableID == id {
			delete(m.reservations, rid)
		}
	}
	return nil
}

// orders

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

func (m *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	defer m.lockWrite(ctx)()
	m.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (m *MemoryStore) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.NotFound("order", id)
	}
	o = cloneOrder(o)
	return &o, nil
}

func (m *MemoryStore) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := []domain.Order{}
	for _, o := range m.orders {
		if filter.TableID != nil && (o.TableID == nil || *o.TableID != *filter.TableID) {
			continue
		}
		if filter.BuyerID != nil && o.BuyerID != *filter.BuyerID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		if filter.Since != nil && o.CreatedAt.Before(*filter.Since) {
			continue
		}
		orders = append(orders, cloneOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func containsStatus[S comparable](list []S, s S) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (m *MemoryStore) UpdateOrder(ctx context.Context, order *domain.Order) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.orders[order.ID]; !ok {
		return domain.NotFound("order", order.ID)
	}
	m.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (m *MemoryStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.orders[id]; !ok {
		return domain.NotFound("order", id)
	}
	delete(m.orders, id)
	return nil
}

func (m *MemoryStore) CountOpenOrders(_ context.Context, tableID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, o := range m.orders {
		if o.TableID != nil && *o.TableID == tableID && o.Status.Open() {
			n++
		}
	}
	return n, nil
}

// reservations

func (m *MemoryStore) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.tables[res.TableID]; !ok {
		return domain.NotFound("table", res.TableID)
	}
	m.reservations[res.ID] = *res
	return nil
}

func (m *MemoryStore) GetReservation(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, domain.NotFound("reservation", id)
	}
	return &r, nil
}

func (m *MemoryStore) ListReservations(_ context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := []domain.Reservation{}
	for _, r := range m.reservations {
		if filter.TableID != nil && r.TableID != *filter.TableID {
			continue
		}
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Date != "" && r.ReservationDate != filter.Date {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, r.Status) {
			continue
		}
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.ReservationDate != b.ReservationDate {
			return a.ReservationDate < b.ReservationDate
		}
		return a.ReservationTime < b.ReservationTime
	})
	return list, nil
}

func (m *MemoryStore) UpdateReservation(ctx context.Context, res *domain.Reservation) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.reservations[res.ID]; !ok {
		return domain.NotFound("reservation", res.ID)
	}
	if _, ok := m.tables[res.TableID]; !ok {
		return domain.NotFound("table", res.TableID)
	}
	m.reservations[res.ID] = *res
	return nil
}

func (m *MemoryStore) CountActiveReservations(_ context.Context, tableID uuid.UUID, date string, excludeID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.reservations {
		if r.TableID == tableID && r.ReservationDate == date && r.Status.Active() && r.ID != excludeID {
			n++
		}
	}
	return n, nil
}

// menu

func (m *MemoryStore) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.categories[item.CategoryID]; !ok {
		return domain.NotFound("category", item.CategoryID)
	}
	m.menu[item.ID] = *item
	return nil
}

func (m *MemoryStore) GetMenuItem(_ context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.menu[id]
	if !ok {
		return nil, domain.NotFound("menu item", id)
	}
	return &item, nil
}

func (m *MemoryStore) ListMenuItems(_ context.Context) ([]domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]domain.MenuItem, 0, len(m.menu))
	for _, item := range m.menu {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (m *MemoryStore) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.menu[item.ID]; !ok {
		return domain.NotFound("menu item", item.ID)
	}
	m.menu[item.ID] = *item
	return nil
}

func (m *MemoryStore) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.menu[id]; !ok {
		return domain.NotFound("menu item", id)
	}
	delete(m.menu, id)
	return nil
}

func (m *MemoryStore) CountMenuItemsInCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, item := range m.menu {
		if item.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// categories

func (m *MemoryStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	defer m.lockWrite(ctx)()
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return domain.Invalid("category %q already exists", category.Name)
		}
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *MemoryStore) GetCategory(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.NotFound("category", id)
	}
	return &c, nil
}

func (m *MemoryStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *MemoryStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	defer m.lockWrite(ctx)()
	if _, ok := m.categories[id]; !ok {
		return domain.NotFound("category", id)
	}
	for _, item := range m.menu {
		if item.CategoryID == id {
			return fmt.Errorf("%w: %s", domain.ErrCategoryInUse, item.Name)
		}
	}
	delete(m.categories, id)
	return nil
}

// users

func (m *MemoryStore) UpsertUser(ctx context.Context, user *domain.User) error {
	defer m.lockWrite(ctx)()
	for _, existing := range m.users {
		if existing.ExternalID == user.ExternalID {
			user.ID = existing.ID
			user.CreatedAt = existing.CreatedAt
			break
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ExternalID == externalID {
			return &u, nil
		}
	}
	return nil, domain.NotFound("user", externalID)
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *MemoryStore) DeleteUserByExternalID(ctx context.Context, externalID string) error {
	defer m.lockWrite(ctx)()
	for id, u := range m.users {
		if u.ExternalID == externalID {
			delete(m.users, id)
			return nil
		}
	}
	return domain.NotFound("user", externalID)
}
