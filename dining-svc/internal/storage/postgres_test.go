package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"tableside/dining-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

var tableRowColumns = []string{
	"id", "number", "capacity", "location", "is_available", "is_reserved", "is_paid", "status",
	"reserved_by", "estimated_serve_minutes", "service_started_at", "created_at", "updated_at",
}

func TestRunInTx_Commit(t *testing.T) {
	repo, mock := setupTestDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders WHERE id=\\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(ctx context.Context) error {
		// nested calls join the outer transaction
		return repo.RunInTx(ctx, func(ctx context.Context) error {
			return repo.DeleteOrder(ctx, id)
		})
	})
	assert.NoError(t, err)
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	repo, mock := setupTestDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders WHERE id=\\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(ctx context.Context) error {
		return repo.DeleteOrder(ctx, id)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunInTx_BeginFails(t *testing.T) {
	repo, mock := setupTestDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := repo.RunInTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

func TestGetTable(t *testing.T) {
	repo, mock := setupTestDB(t)
	id := uuid.New()
	started := time.Date(2026, time.March, 14, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM hotel_tables WHERE id = \\$1$").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(tableRowColumns).AddRow(
			id.String(), 4, 6, "outdoor", false, true, false, "reserved",
			[]byte(`{"name":"Ada","phone":"123"}`), nil, started, started, started,
		))

	table, err := repo.GetTable(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, table.ID)
	assert.Equal(t, domain.LocationOutdoor, table.Location)
	assert.Equal(t, domain.TableReserved, table.Status)
	require.NotNil(t, table.ReservedBy)
	assert.Equal(t, "Ada", table.ReservedBy.Name)
	assert.Nil(t, table.EstimatedServeMinutes)
	assert.Equal(t, started, table.ServiceStartedAt)
}

func TestGetTable_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM hotel_tables WHERE id = \\$1 FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(tableRowColumns))

	_, err := repo.LockTable(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTable_DuplicateNumber(t *testing.T) {
	repo, mock := setupTestDB(t)
	table := &domain.Table{ID: uuid.New(), Number: 3, Capacity: 2, Location: domain.LocationIndoor, Status: domain.TableAvailable}

	mock.ExpectExec("INSERT INTO hotel_tables").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateTable(context.Background(), table)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListOrders_BuildsFilter(t *testing.T) {
	repo, mock := setupTestDB(t)
	tableID := uuid.New()
	orderID := uuid.New()
	buyerID := uuid.New()
	since := time.Date(2026, time.March, 14, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM orders WHERE table_id = $1 AND status = ANY($2) AND created_at >= $3 ORDER BY created_at DESC")).
		WithArgs(tableID, pq.Array([]string{"pending", "preparing"}), since).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "buyer_id", "table_id", "items", "total_amount", "quantity", "status", "is_paid", "paid_at",
			"created_at", "updated_at",
		}).AddRow(
			orderID.String(), buyerID.String(), tableID.String(),
			[]byte(`[{"menu_item_id":"`+uuid.NewString()+`","name":"Soup","price":"5.00","quantity":2}]`),
			"10.00", 2, "pending", false, nil, since, since,
		))

	orders, err := repo.ListOrders(context.Background(), domain.OrderFilter{
		TableID:  &tableID,
		Statuses: []domain.OrderStatus{domain.OrderPending, domain.OrderPreparing},
		Since:    &since,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, orderID, o.ID)
	require.NotNil(t, o.TableID)
	assert.Equal(t, tableID, *o.TableID)
	assert.Equal(t, "10.00", o.TotalAmount.String())
	assert.Nil(t, o.PaidAt)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Soup", o.Items[0].Name)
}

func TestListOrders_NoFilter(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orders, err := repo.ListOrders(context.Background(), domain.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestDeleteCategory_InUse(t *testing.T) {
	repo, mock := setupTestDB(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM categories WHERE id=\\$1").
		WithArgs(id).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.DeleteCategory(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
}

func TestCreateMenuItem_UnknownCategory(t *testing.T) {
	repo, mock := setupTestDB(t)
	item := &domain.MenuItem{ID: uuid.New(), Name: "Soup", Price: domain.MustMoney("5"), CategoryID: uuid.New()}

	mock.ExpectExec("INSERT INTO menu_items").
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.CreateMenuItem(context.Background(), item)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := setupTestDB(t)

	for _, stmt := range schemaStatements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestEnsureSchema_ReportsFailingStatement(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS categories").
		WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())
	assert.ErrorContains(t, err, "CREATE TABLE IF NOT EXISTS categories (")
	assert.ErrorContains(t, err, "permission denied")
}
