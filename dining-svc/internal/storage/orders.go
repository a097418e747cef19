package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orderColumns = `id, buyer_id, table_id, items, total_amount, quantity, status, is_paid, paid_at, created_at, updated_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o       domain.Order
		tableID uuid.NullUUID
		items   []byte
		paidAt  sql.NullTime
	)
	err := row.Scan(&o.ID, &o.BuyerID, &tableID, &items, &o.TotalAmount, &o.Quantity, &o.Status, &o.IsPaid,
		&paidAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tableID.Valid {
		id := tableID.UUID
		o.TableID = &id
	}
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = r.q(ctx).ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.BuyerID, nullableUUID(o.TableID), items, o.TotalAmount, o.Quantity, o.Status, o.IsPaid,
		o.PaidAt, o.CreatedAt, o.UpdatedAt)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.NotFound("table", nullableUUID(o.TableID).UUID)
	}
	return err
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.q(ctx).QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("order", id)
	}
	return o, err
}

func (r *PostgresRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.TableID != nil {
		where = append(where, "table_id = "+arg(*filter.TableID))
	}
	if filter.BuyerID != nil {
		where = append(where, "buyer_id = "+arg(*filter.BuyerID))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(pq.Array(statuses))+")")
	}
	if filter.Since != nil {
		where = append(where, "created_at >= "+arg(*filter.Since))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateOrder writes the mutable part of an order. Line items are fixed
// once the order is placed.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, o *domain.Order) error {
	res, err := r.q(ctx).ExecContext(ctx, `
		UPDATE orders SET status=$2, is_paid=$3, paid_at=$4, updated_at=$5 WHERE id=$1`,
		o.ID, o.Status, o.IsPaid, o.PaidAt, o.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("order", o.ID))
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res, err := r.q(ctx).ExecContext(ctx, "DELETE FROM orders WHERE id=$1", id)
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("order", id))
}

func (r *PostgresRepository) CountOpenOrders(ctx context.Context, tableID uuid.UUID) (int, error) {
	var n int
	err := r.q(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE table_id = $1 AND status IN ('pending', 'preparing')", tableID).Scan(&n)
	return n, err
}
