package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeInvalidDiscount = "INVALID_DISCOUNT"
	ErrCodeInvalidRating   = "INVALID_RATING"
	ErrCodeInvalidItemType = "INVALID_ITEM_TYPE"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeUploadViolation = "UPLOAD_VIOLATION"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that handlers translate to a
// client-facing status code and message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrTitlePriceRequired = NewDomainError(ErrCodeMissingField, "Title and price are required")
	ErrInvalidPrice       = NewDomainError(ErrCodeInvalidPrice, "Price must be a valid number")
	ErrInvalidDiscount    = NewDomainError(ErrCodeInvalidDiscount, "Discount must be a valid number")
	ErrInvalidRating      = NewDomainError(ErrCodeInvalidRating, "Rating must be a number between 0 and 5")
	ErrInvalidItemType    = NewDomainError(ErrCodeInvalidItemType, "Item type must be cold, organic or regular")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
)
