package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem represents one aggregated quantity of a single product in
// the cart. At most one CartItem exists per product; repeated adds
// accumulate the quantity on the existing line.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// CartEntry is a cart line with its referenced product resolved.
type CartEntry struct {
	CartItem
	Product Product `json:"product"`
}

// CartRequest represents the request payload for adding to the cart.
type CartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartResponse represents the response payload for a cart addition.
type CartResponse struct {
	Message  string    `json:"message"`
	CartItem *CartItem `json:"cartItem"`
}
