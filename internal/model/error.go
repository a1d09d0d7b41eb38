package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeInvalidCart     = "INVALID_CART"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeInvalidStock    = "INVALID_STOCK"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code and a message
// safe to surface to the user.
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
	ErrEmptyCart       = NewDomainError(ErrCodeEmptyCart, "Your cart is empty.")
	ErrInvalidCart     = NewDomainError(ErrCodeInvalidCart, "Invalid cart data.")
	ErrInvalidPrice    = NewDomainError(ErrCodeInvalidPrice, "Please enter a valid price.")
	ErrInvalidStock    = NewDomainError(ErrCodeInvalidStock, "Please enter a valid stock quantity.")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Please enter a valid quantity greater than 0.")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found.")
	ErrOrderNotFound   = NewDomainError(ErrCodeOrderNotFound, "Order not found.")
	ErrUnauthorised    = NewDomainError(ErrCodeUnauthorised, "Unauthorized. Admin access required.")
)

// MissingFieldError builds a field-specific validation error for a required
// checkout or product form field.
func MissingFieldError(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, "Please fill in the required field: "+field+".")
}
