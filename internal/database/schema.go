package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema holds the DDL for the two collections this service owns. The
// UNIQUE constraint on cart_items.product_id enforces the
// one-line-per-product invariant at the storage engine, which is what
// the upsert in the cart repository relies on.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		discount DOUBLE PRECISION NOT NULL DEFAULT 0,
		item_type TEXT NOT NULL DEFAULT 'regular',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		images TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL UNIQUE REFERENCES products(id),
		quantity INT NOT NULL DEFAULT 1,
		added_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC);
`

// EnsureSchema creates the products and cart_items tables if they do
// not exist. It runs once at startup, before the server accepts
// requests.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")

	return nil
}
