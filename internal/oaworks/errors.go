package oaworks

import (
	"errors"
	"fmt"
)

// Common errors returned by the metadata client.
var (
	// ErrNotFound indicates the service has no record for the DOI.
	ErrNotFound = errors.New("DOI not found in metadata service")

	// ErrRateLimited indicates the service throttled the request.
	ErrRateLimited = errors.New("metadata service rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with metadata service")

	// ErrInvalidResponse indicates a malformed response body.
	ErrInvalidResponse = errors.New("invalid response from metadata service")

	// ErrEmptyDOI is returned when Lookup is called without an identifier.
	ErrEmptyDOI = errors.New("empty DOI")
)

// APIError represents a non-success HTTP status from the metadata service.
type APIError struct {
	StatusCode int
	Message    string
	DOI        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("metadata API error (status %d): %s (doi: %s)", e.StatusCode, e.Message, e.DOI)
}

// IsNotFound returns true if the error indicates the DOI was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
