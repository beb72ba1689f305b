package registrar

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for registrar lookups.
type ErrorCategory string

const (
	// ErrorTimeout indicates the registrar took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates a successful response without a usable expiry
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates rejected credentials
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates a transport failure or 5xx
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the domain is not in this registrar account
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ErrNotConfigured is returned when registrar credentials are absent.
var ErrNotConfigured = errors.New("registrar credentials not configured")

// Error wraps registrar failures with a normalized category.
type Error struct {
	Category   ErrorCategory
	Domain     string
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("registrar lookup %s [%s]: %s: %v", e.Domain, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("registrar lookup %s [%s]: %s", e.Domain, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func newError(category ErrorCategory, domain, message string, underlying error) *Error {
	return &Error{Category: category, Domain: domain, Message: message, Underlying: underlying}
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var re *Error
	if errors.As(err, &re) {
		return re.Category
	}
	return ErrorInternal
}
