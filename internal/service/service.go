package service

import (
	"context"

	"shoplite/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// Create validates the raw form fields, applies defaults and
	// persists a new product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// List retrieves all products, most recent first.
	List(ctx context.Context) ([]model.Product, error)
}

// CartService defines operations for cart management.
type CartService interface {
	// AddToCart adds a product to the cart, accumulating quantity on
	// the existing line when the product is already carted.
	AddToCart(ctx context.Context, req *model.CartRequest) (*model.CartItem, error)

	// List retrieves all cart lines with their products resolved.
	List(ctx context.Context) ([]model.CartEntry, error)
}
