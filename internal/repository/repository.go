package repository

import (
	"context"

	"shoplite/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product record.
	Create(ctx context.Context, product *model.Product) error

	// GetByID retrieves a single product by its ID. Returns (nil, nil)
	// when no product exists with that ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetAllByRecency retrieves all products ordered by creation time,
	// most recent first.
	GetAllByRecency(ctx context.Context) ([]model.Product, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// AddOrIncrement inserts a cart line for the product, or adds the
	// requested quantity to the existing line. The whole operation is
	// a single atomic statement, so concurrent adds for the same
	// product never produce duplicate lines.
	AddOrIncrement(ctx context.Context, productID uuid.UUID, quantity int) (*model.CartItem, error)

	// GetByProductID retrieves the cart line referencing the product.
	// Returns (nil, nil) when no line exists.
	GetByProductID(ctx context.Context, productID uuid.UUID) (*model.CartItem, error)

	// GetAllWithProduct retrieves every cart line joined with its
	// referenced product.
	GetAllWithProduct(ctx context.Context) ([]model.CartEntry, error)
}
