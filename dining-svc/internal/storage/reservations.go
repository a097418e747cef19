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

const reservationColumns = `id, table_id, user_id, guest_count, guest_info,
	to_char(reservation_date, 'YYYY-MM-DD'), reservation_time, special_requests, status, created_at, updated_at`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res   domain.Reservation
		guest []byte
	)
	err := row.Scan(&res.ID, &res.TableID, &res.UserID, &res.GuestCount, &guest,
		&res.ReservationDate, &res.ReservationTime, &res.SpecialRequests, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(guest, &res.GuestInfo); err != nil {
		return nil, fmt.Errorf("decode guest_info: %w", err)
	}
	return &res, nil
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	guest, err := json.Marshal(res.GuestInfo)
	if err != nil {
		return err
	}
	_, err = r.q(ctx).ExecContext(ctx, `
		INSERT INTO reservations (id, table_id, user_id, guest_count, guest_info, reservation_date, reservation_time,
			special_requests, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		res.ID, res.TableID, res.UserID, res.GuestCount, guest, res.ReservationDate, res.ReservationTime,
		res.SpecialRequests, res.Status, res.CreatedAt, res.UpdatedAt)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.NotFound("table", res.TableID)
	}
	return err
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	row := r.q(ctx).QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("reservation", id)
	}
	return res, err
}

func (r *PostgresRepository) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
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
	if filter.UserID != nil {
		where = append(where, "user_id = "+arg(*filter.UserID))
	}
	if filter.Date != "" {
		where = append(where, "reservation_date = "+arg(filter.Date))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(pq.Array(statuses))+")")
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY reservation_date, reservation_time"

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) UpdateReservation(ctx context.Context, res *domain.Reservation) error {
	guest, err := json.Marshal(res.GuestInfo)
	if err != nil {
		return err
	}
	result, err := r.q(ctx).ExecContext(ctx, `
		UPDATE reservations
		SET table_id=$2, guest_count=$3, guest_info=$4, reservation_date=$5, reservation_time=$6,
			special_requests=$7, status=$8, updated_at=$9
		WHERE id=$1`,
		res.ID, res.TableID, res.GuestCount, guest, res.ReservationDate, res.ReservationTime,
		res.SpecialRequests, res.Status, res.UpdatedAt)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.NotFound("table", res.TableID)
	}
	if err != nil {
		return err
	}
	return affected(result, domain.NotFound("reservation", res.ID))
}

func (r *PostgresRepository) CountActiveReservations(ctx context.Context, tableID uuid.UUID, date string, excludeID uuid.UUID) (int, error) {
	var n int
	err := r.q(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE table_id = $1 AND reservation_date = $2 AND status IN ('pending', 'confirmed') AND id <> $3`,
		tableID, date, excludeID).Scan(&n)
	return n, err
}
