package dto

import "net/http"

// Error code constants exposed by the API
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeInvalidCredentials is used when login credentials are wrong
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeMarketplaceNotConfigured is used for unknown marketplace slugs
	ErrCodeMarketplaceNotConfigured = "MARKETPLACE_NOT_CONFIGURED"
	// ErrCodeMarketplaceDisabled is used when the marketplace exists but is disabled
	ErrCodeMarketplaceDisabled = "MARKETPLACE_DISABLED"
	// ErrCodeDataUnavailable is used when the active data source cannot answer
	ErrCodeDataUnavailable = "DATA_UNAVAILABLE"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeNotFound:           http.StatusNotFound,

	// An unknown slug is addressed like a missing resource; a disabled
	// marketplace is a conflict with its configured state; a source
	// failure is a dependency outage, not a server bug.
	ErrCodeMarketplaceNotConfigured: http.StatusNotFound,
	ErrCodeMarketplaceDisabled:      http.StatusConflict,
	ErrCodeDataUnavailable:          http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
