package repository

import (
	"context"
	"fmt"
	"time"

	"shoplite/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// AddOrIncrement inserts a cart line or adds to the existing one. The
// unique index on product_id makes the upsert atomic, so two
// concurrent adds for one product serialise in the database rather
// than racing a find-then-write in the application.
func (r *cartRepository) AddOrIncrement(ctx context.Context, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	query := `
		INSERT INTO cart_items (id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, product_id, quantity, added_at
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, uuid.New(), productID, quantity, time.Now()).Scan(
		&item.ID,
		&item.ProductID,
		&item.Quantity,
		&item.AddedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", productID.String()).
			Int("quantity", quantity).
			Msg("failed to upsert cart item")
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	r.logger.Debug().
		Str("cart_item_id", item.ID.String()).
		Str("product_id", productID.String()).
		Int("quantity", item.Quantity).
		Msg("cart item upserted")

	return &item, nil
}

// GetByProductID retrieves the cart line referencing the product.
func (r *cartRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*model.CartItem, error) {
	query := `
		SELECT id, product_id, quantity, added_at
		FROM cart_items
		WHERE product_id = $1
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&item.ID,
		&item.ProductID,
		&item.Quantity,
		&item.AddedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", productID.String()).Msg("cart item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// GetAllWithProduct retrieves every cart line joined with its product.
func (r *cartRepository) GetAllWithProduct(ctx context.Context) ([]model.CartEntry, error) {
	query := `
		SELECT c.id, c.product_id, c.quantity, c.added_at,
		       p.id, p.title, p.price, p.discount, p.item_type, p.rating, p.images, p.created_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		ORDER BY c.added_at, c.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var entries []model.CartEntry
	for rows.Next() {
		var e model.CartEntry
		err := rows.Scan(
			&e.ID,
			&e.ProductID,
			&e.Quantity,
			&e.AddedAt,
			&e.Product.ID,
			&e.Product.Title,
			&e.Product.Price,
			&e.Product.Discount,
			&e.Product.ItemType,
			&e.Product.Rating,
			&e.Product.Images,
			&e.Product.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return entries, nil
}
