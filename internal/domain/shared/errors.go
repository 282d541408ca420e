package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so wrapped instances compare equal
// to their sentinel
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
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
	ErrMarketplaceNotConfigured = NewDomainError("MARKETPLACE_NOT_CONFIGURED", "Marketplace is not configured")
	ErrMarketplaceDisabled      = NewDomainError("MARKETPLACE_DISABLED", "Marketplace is disabled")
	ErrDataUnavailable          = NewDomainError("DATA_UNAVAILABLE", "Marketplace data source is unavailable")
	ErrInvalidInput             = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized             = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrNotFound                 = NewDomainError("NOT_FOUND", "Resource not found")
)

// MarketplaceNotConfigured returns a not-configured error for a specific slug
func MarketplaceNotConfigured(slug string) *DomainError {
	return &DomainError{
		Code:    ErrMarketplaceNotConfigured.Code,
		Message: fmt.Sprintf("Marketplace %q is not configured", slug),
	}
}

// MarketplaceDisabled returns a disabled error for a specific slug
func MarketplaceDisabled(slug string) *DomainError {
	return &DomainError{
		Code:    ErrMarketplaceDisabled.Code,
		Message: fmt.Sprintf("Marketplace %q is disabled", slug),
	}
}

// DataUnavailable wraps a source failure for a specific marketplace,
// keeping the cause for logging while exposing a stable code. An empty
// slug means the failure was not attributable to one marketplace.
func DataUnavailable(slug string, cause error) *DomainError {
	msg := "Data source is unavailable"
	if slug != "" {
		msg = fmt.Sprintf("Data source for marketplace %q is unavailable", slug)
	}
	return &DomainError{
		Code:    ErrDataUnavailable.Code,
		Message: msg,
		cause:   cause,
	}
}
