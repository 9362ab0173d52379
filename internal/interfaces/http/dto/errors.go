package dto

import "net/http"

// Transport-level error codes. Domain error codes pass through the envelope
// unchanged; these cover failures that never reach the domain.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// domainCodeHTTPStatus maps domain error codes with a non-default HTTP
// status. Everything else a domain error produces is a 400.
var domainCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeInternal:     http.StatusInternalServerError,

	"ALREADY_EXISTS":       http.StatusConflict,
	"ZONE_IN_USE":          http.StatusConflict,
	"CATEGORY_IN_USE":      http.StatusConflict,
	"TABLE_IN_USE":         http.StatusConflict,
	"TABLE_ALREADY_MERGED": http.StatusConflict,

	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_POINTS": http.StatusUnprocessableEntity,
	"TABLE_NOT_AVAILABLE": http.StatusUnprocessableEntity,
	"NOT_MERGED":          http.StatusUnprocessableEntity,
	"INVALID_MERGE":       http.StatusUnprocessableEntity,
	"INVALID_TRANSFER":    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a domain or transport error code
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
