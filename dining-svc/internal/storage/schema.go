package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		category_id UUID NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
		image_url TEXT,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		preparation_minutes INT CHECK (preparation_minutes BETWEEN 1 AND 120),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		username TEXT,
		first_name TEXT,
		last_name TEXT,
		avatar_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS hotel_tables (
		id UUID PRIMARY KEY,
		number INT NOT NULL UNIQUE CHECK (number >= 1),
		capacity INT NOT NULL CHECK (capacity >= 1),
		location TEXT NOT NULL DEFAULT 'indoor',
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		is_reserved BOOLEAN NOT NULL DEFAULT FALSE,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL DEFAULT 'available',
		reserved_by JSONB,
		estimated_serve_minutes INT,
		service_started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		buyer_id UUID NOT NULL,
		table_id UUID REFERENCES hotel_tables(id) ON DELETE SET NULL,
		items JSONB NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL,
		quantity INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		paid_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		table_id UUID NOT NULL REFERENCES hotel_tables(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		guest_count INT NOT NULL CHECK (guest_count >= 1),
		guest_info JSONB NOT NULL,
		reservation_date DATE NOT NULL,
		reservation_time TEXT NOT NULL,
		special_requests TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	"CREATE INDEX IF NOT EXISTS orders_table_created_idx ON orders (table_id, created_at)",
	"CREATE INDEX IF NOT EXISTS orders_buyer_idx ON orders (buyer_id)",
	"CREATE INDEX IF NOT EXISTS reservations_table_date_idx ON reservations (table_id, reservation_date)",
	"CREATE INDEX IF NOT EXISTS menu_items_category_idx ON menu_items (category_id)",
}

// EnsureSchema creates missing tables and indexes. Every statement is
// idempotent so it is safe to run on each deploy.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, c := range stmt {
		if c == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
