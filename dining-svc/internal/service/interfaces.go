package service

import (
	"context"
	"io"
	"time"

	"tableside/dining-svc/internal/domain"
	"tableside/dining-svc/internal/identity"
	"tableside/pkg/events"

	"github.com/google/uuid"
)

// Store runs fn inside one database transaction. Repository calls made with
// the ctx passed to fn join that transaction.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	ListTables(ctx context.Context) ([]domain.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	// LockTable reads the table and holds it until the surrounding transaction ends.
	LockTable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	UpdateTable(ctx context.Context, table *domain.Table) error
	DeleteTable(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	CountOpenOrders(ctx context.Context, tableID uuid.UUID) (int, error)
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, res *domain.Reservation) error
	GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	UpdateReservation(ctx context.Context, res *domain.Reservation) error
	CountActiveReservations(ctx context.Context, tableID uuid.UUID, date string, excludeID uuid.UUID) (int, error)
}

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
	CountMenuItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUserByExternalID(ctx context.Context, externalID string) error
}

// Repositories bundles the storage backend. Both storage implementations
// satisfy every interface, so main usually fills all fields with one value.
type Repositories struct {
	Store        Store
	Tables       TableRepository
	Orders       OrderRepository
	Reservations ReservationRepository
	Menu         MenuRepository
	Categories   CategoryRepository
	Users        UserRepository
}

type MenuCache interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, bool, error)
	SetMenu(ctx context.Context, items []domain.MenuItem) error
	InvalidateMenu(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type MediaStore interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// MessageMarker remembers webhook deliveries that were already applied.
type MessageMarker interface {
	Seen(ctx context.Context, id string) (bool, error)
	Mark(ctx context.Context, id string) error
}

type Clock interface {
	Now() time.Time
}

type TableServiceInterface interface {
	Create(ctx context.Context, table *domain.Table) error
	List(ctx context.Context) ([]domain.Table, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TablePatch) (*domain.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkAvailable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	MarkUnavailable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	QRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ListGrouped(ctx context.Context, filter domain.OrderFilter) ([]domain.TableOrderGroup, error)
	TableOrders(ctx context.Context, tableID uuid.UUID) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, action TableAction) (*domain.Order, error)
	CancelByCustomer(ctx context.Context, id uuid.UUID, buyerExternalID string) (*domain.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, in domain.CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
}

type MenuServiceInterface interface {
	Menu(ctx context.Context, query string) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, id uuid.UUID, patch domain.MenuItemPatch) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*domain.MenuItem, error)
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*domain.MenuItem, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type UserServiceInterface interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ApplyIdentityEvent(ctx context.Context, messageID string, event identity.Event) (bool, error)
}

var (
	_ TableServiceInterface       = (*TableService)(nil)
	_ OrderServiceInterface       = (*OrderService)(nil)
	_ ReservationServiceInterface = (*ReservationService)(nil)
	_ MenuServiceInterface        = (*MenuService)(nil)
	_ UserServiceInterface        = (*UserService)(nil)
)
