package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeOrderItemNotFound  = "ORDER_ITEM_NOT_FOUND"
	ErrCodeWarrantyNotFound   = "WARRANTY_NOT_FOUND"
	ErrCodeClaimNotFound      = "CLAIM_NOT_FOUND"
	ErrCodeDuplicateSerial    = "DUPLICATE_SERIAL"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeEmptyOrder         = "EMPTY_ORDER"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodePaymentFailed      = "PAYMENT_FAILED"
	ErrCodeCheckoutInFlight   = "CHECKOUT_IN_FLIGHT"
	ErrCodeOutOfStock         = "OUT_OF_STOCK"
	ErrCodeInvalidPaymentMeth = "INVALID_PAYMENT_METHOD"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message so
// handlers can map business rejections to HTTP statuses.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOrderItemNotFound = NewDomainError(ErrCodeOrderItemNotFound, "Order does not contain that product")
	ErrWarrantyNotFound  = NewDomainError(ErrCodeWarrantyNotFound, "No warranty on file for that id")
	ErrClaimNotFound     = NewDomainError(ErrCodeClaimNotFound, "Warranty claim not found")
	ErrDuplicateSerial   = NewDomainError(ErrCodeDuplicateSerial, "A warranty is already registered for that serial number")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrEmptyOrder        = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
	ErrCheckoutInFlight  = NewDomainError(ErrCodeCheckoutInFlight, "A checkout is already in progress")
	ErrOutOfStock        = NewDomainError(ErrCodeOutOfStock, "Product is out of stock")
)
