package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// NewValidationError creates a validation error that is rejected before
// any query is issued
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidRate   = NewDomainError("INVALID_CONVERSION_RATE", "Currency conversion rate must be positive")
	ErrDateInFuture  = NewDomainError("VALIDATION_ERROR", "Start date cannot be in the future")
	ErrDateRequired  = NewDomainError("VALIDATION_ERROR", "Start date is required")
	ErrInvalidPeriod = NewDomainError("VALIDATION_ERROR", "Start date must not be after end date")
)
