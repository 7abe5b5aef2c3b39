package dto

import "net/http"

// Error codes surfaced in the response envelope. Domain errors carry
// these codes verbatim; the HTTP layer only maps them to status codes.

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_FAILED"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInvalidCredentials is used when an admin login fails
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
)

// Rate limiting and upstream error codes
const (
	// ErrCodeRateLimited is used when a client exceeds the request budget
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeUpstreamUnavailable is used when a dependency (object store,
	// mail relay) cannot be reached
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,

	// Domain codes raised by catalog, cart and order aggregates
	"INVALID_TITLE":        http.StatusBadRequest,
	"INVALID_VARIANTS":     http.StatusBadRequest,
	"UNKNOWN_SIZE":         http.StatusBadRequest,
	"INVALID_CONTACT":      http.StatusBadRequest,
	"INVALID_CART_ITEM":    http.StatusBadRequest,
	"EMPTY_CART":           http.StatusBadRequest,
	"CART_NOT_HYDRATED":    http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_IMAGE":        http.StatusBadRequest,
	"INVALID_IMAGE_TYPE":   http.StatusBadRequest,
	"IMAGE_TOO_LARGE":      http.StatusRequestEntityTooLarge,
	"DUPLICATE_SUBMISSION": http.StatusConflict,
	"DUPLICATE_REQUEST":    http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"CORRUPT_SNAPSHOT":     http.StatusInternalServerError,
	"CORRUPT_VARIANTS":     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
