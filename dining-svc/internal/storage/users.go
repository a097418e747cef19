package storage

import (
	"context"
	"database/sql"
	"errors"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

const userColumns = `id, external_id, email, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(avatar_url, ''), created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUser keeps the internal id and created_at of an existing external id.
func (r *PostgresRepository) UpsertUser(ctx context.Context, u *domain.User) error {
	return r.q(ctx).QueryRowContext(ctx, `
		INSERT INTO users (id, external_id, email, username, first_name, last_name, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_id) DO UPDATE
		SET email = EXCLUDED.email, username = EXCLUDED.username, first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name, avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		u.ID, u.ExternalID, u.Email, u.Username, u.FirstName, u.LastName, u.AvatarURL, u.CreatedAt, u.UpdatedAt).
		Scan(&u.ID, &u.CreatedAt)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user", id)
	}
	return u, err
}

func (r *PostgresRepository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	u, err := scanUser(r.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user", externalID)
	}
	return u, err
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) DeleteUserByExternalID(ctx context.Context, externalID string) error {
	res, err := r.q(ctx).ExecContext(ctx, "DELETE FROM users WHERE external_id=$1", externalID)
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("user", externalID))
}
