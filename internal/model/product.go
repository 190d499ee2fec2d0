package model

import (
	"time"

	"github.com/google/uuid"
)

// Item types a product may be tagged with.
const (
	ItemTypeCold    = "cold"
	ItemTypeOrganic = "organic"
	ItemTypeRegular = "regular"
)

// ValidItemType reports whether t is one of the recognised item types.
func ValidItemType(t string) bool {
	return t == ItemTypeCold || t == ItemTypeOrganic || t == ItemTypeRegular
}

// Product represents a sellable catalogue entry.
type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Price     float64   `json:"price" db:"price"`
	Discount  float64   `json:"discount" db:"discount"`
	ItemType  string    `json:"itemType" db:"item_type"`
	Rating    float64   `json:"rating" db:"rating"`
	Images    []string  `json:"images" db:"images"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest carries the raw multipart form fields for product
// creation. Numeric fields stay as text until the service parses them.
type ProductRequest struct {
	Title    string
	Price    string
	Discount string
	ItemType string
	Rating   string
	Images   []string
}

// ProductResponse represents the response payload for product creation.
type ProductResponse struct {
	Message string   `json:"message"`
	Product *Product `json:"product"`
}
