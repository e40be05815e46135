package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrTokenMissing indicates the client was built without an API token
	ErrTokenMissing = errors.New("TMDB API token is not configured")
	// ErrInvalidQuery indicates an empty search query
	ErrInvalidQuery = errors.New("search query must not be empty")
	// ErrInvalidPage indicates a page number below 1
	ErrInvalidPage = errors.New("page must be at least 1")
)

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	Err error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("tmdb request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError represents a TMDB API error
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if TMDB throttled the request
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsNetworkError reports whether err is, or wraps, a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// AsAPIError unwraps err to an APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
