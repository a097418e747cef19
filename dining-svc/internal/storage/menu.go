package storage

import (
	"context"
	"database/sql"
	"errors"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

const menuColumns = `id, name, description, price, category_id, COALESCE(image_url, ''), is_available,
	preparation_minutes, created_at, updated_at`

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var (
		item    domain.MenuItem
		minutes sql.NullInt64
	)
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID, &item.ImageURL,
		&item.IsAvailable, &minutes, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if minutes.Valid {
		m := int(minutes.Int64)
		item.PreparationMinutes = &m
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	_, err := r.q(ctx).ExecContext(ctx, `
		INSERT INTO menu_items (id, name, description, price, category_id, image_url, is_available,
			preparation_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Name, item.Description, item.Price, item.CategoryID, item.ImageURL, item.IsAvailable,
		intValue(item.PreparationMinutes), item.CreatedAt, item.UpdatedAt)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.NotFound("category", item.CategoryID)
	}
	return err
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	row := r.q(ctx).QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("menu item", id)
	}
	return item, err
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY lower(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	res, err := r.q(ctx).ExecContext(ctx, `
		UPDATE menu_items
		SET name=$2, description=$3, price=$4, category_id=$5, image_url=$6, is_available=$7,
			preparation_minutes=$8, updated_at=$9
		WHERE id=$1`,
		item.ID, item.Name, item.Description, item.Price, item.CategoryID, item.ImageURL, item.IsAvailable,
		intValue(item.PreparationMinutes), item.UpdatedAt)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.NotFound("category", item.CategoryID)
	}
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("menu item", item.ID))
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.q(ctx).ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1", id)
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("menu item", id))
}

func (r *PostgresRepository) CountMenuItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	err := r.q(ctx).QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_items WHERE category_id = $1", categoryID).Scan(&n)
	return n, err
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := r.q(ctx).ExecContext(ctx,
		"INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)", c.ID, c.Name, c.CreatedAt)
	if pqCode(err) == pqUniqueViolation {
		return domain.Invalid("category %q already exists", c.Name)
	}
	return err
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	err := r.q(ctx).QueryRowContext(ctx, "SELECT id, name, created_at FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q(ctx).QueryContext(ctx, "SELECT id, name, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// DeleteCategory maps the RESTRICT foreign key to ErrCategoryInUse so a
// racing insert cannot orphan menu items.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := r.q(ctx).ExecContext(ctx, "DELETE FROM categories WHERE id=$1", id)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.ErrCategoryInUse
	}
	if err != nil {
		return err
	}
	return affected(res, domain.NotFound("category", id))
}
