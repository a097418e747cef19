package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

const tableColumns = `id, number, capacity, location, is_available, is_reserved, is_paid, status,
	reserved_by, estimated_serve_minutes, service_started_at, created_at, updated_at`

func scanTable(row rowScanner) (*domain.Table, error) {
	var (
		t          domain.Table
		reservedBy []byte
		estimate   sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.IsAvailable, &t.IsReserved, &t.IsPaid, &t.Status,
		&reservedBy, &estimate, &t.ServiceStartedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(reservedBy) > 0 {
		var guest domain.GuestInfo
		if err := json.Unmarshal(reservedBy, &guest); err != nil {
			return nil, fmt.Errorf("decode reserved_by: %w", err)
		}
		t.ReservedBy = &guest
	}
	if estimate.Valid {
		minutes := int(estimate.Int64)
		t.EstimatedServeMinutes = &minutes
	}
	return &t, nil
}

func reservedByValue(guest *domain.GuestInfo) (any, error) {
	if guest == nil {
		return nil, nil
	}
	raw, err := json.Marshal(guest)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func intValue(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func (r *PostgresRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	reservedBy, err := reservedByValue(t.ReservedBy)
	if err != nil {
		return err
	}
	_, err = r.q(ctx).ExecContext(ctx, `
		INSERT INTO hotel_tables (`+tableColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.Number, t.Capacity, t.Location, t.IsAvailable, t.IsReserved, t.IsPaid, t.Status,
		reservedBy, intValue(t.EstimatedServeMinutes), t.ServiceStartedAt, t.CreatedAt, t.UpdatedAt)
	if pqCode(err) == pqUniqueViolation {
		return domain.Invalid("table number %d already exists", t.Number)
	}
	return err
}

func (r *PostgresRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT `+tableColumns+` FROM hotel_tables ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	return r.getTable(ctx, id, "")
}

func (r *PostgresRepository) LockTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	return r.getTable(ctx, id, " FOR UPDATE")
}

func (r *PostgresRepository) getTable(ctx context.Context, id uuid.UUID, suffix string) (*domain.Table, error) {
	row := r.q(ctx).QueryRowContext(ctx, `SELECT `+tableColumns+` FROM hotel_tables WHERE id = $1`+suffix, id)
	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("table", id)
	}
	return t, err
}

func (r *PostgresRepository) UpdateTable(ctx context.Context, t *domain.Table) error {
	reservedBy, err := reservedByValue(t.ReservedBy)
	if err != nil {
		return err
	}
	res, err := r.q(ctx).ExecContext(ctx, `
		UPDATE hotel_tables
		SET number=$2, capacity=$3, location=$4, is_available=$5, is_reserved=$6, is_paid=$7, status=$8,
			reserved_by=$9, estimated_serve_minutes=$10, service_started_at=$11, updated_at=$12
		WHERE id=$1`,
		t.ID, t.Number, t.Capacity, t.Location, t.IsAvailable, t.IsReserved, t.IsPaid, t.Status,
		reservedBy, intValue(t.EstimatedServeMinutes), t.ServiceStartedAt, t.UpdatedAt)
	if pqCode(err) == pqUniqueViolation {
		return domain.Invalid("table number %d already exists", t.Number)
	}
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("table", t.ID))
}

// DeleteTable relies on the foreign keys: orders keep their row with
// table_id set to NULL, reservations go with the table.
func (r *PostgresRepository) DeleteTable(ctx context.Context, id uuid.UUID) error {
	res, err := r.q(ctx).ExecContext(ctx, "DELETE FROM hotel_tables WHERE id=$1", id)
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("table", id))
}
