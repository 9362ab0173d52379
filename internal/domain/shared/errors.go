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

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInsufficientPoints = NewDomainError("INSUFFICIENT_POINTS", "Insufficient loyalty points available")
	ErrZoneInUse          = NewDomainError("ZONE_IN_USE", "Zone still has tables assigned")
	ErrCategoryInUse      = NewDomainError("CATEGORY_IN_USE", "Category still has menu items assigned")
	ErrTableNotAvailable  = NewDomainError("TABLE_NOT_AVAILABLE", "Table is not available")
	ErrTableAlreadyMerged = NewDomainError("TABLE_ALREADY_MERGED", "Table is already part of a merge group")
)
