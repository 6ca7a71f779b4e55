package orcid

import (
	"errors"
	"fmt"
)

// Common errors returned by the ORCID client.
var (
	// ErrNotFound indicates the ORCID iD does not exist in the registry.
	ErrNotFound = errors.New("not found in ORCID registry")

	// ErrRateLimited indicates the registry throttled the request.
	ErrRateLimited = errors.New("ORCID rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ORCID")

	// ErrInvalidResponse indicates an unexpected or malformed response body.
	ErrInvalidResponse = errors.New("invalid response from ORCID")

	// ErrInvalidID indicates a malformed ORCID iD.
	ErrInvalidID = errors.New("invalid ORCID iD")
)

// APIError represents a non-success HTTP status from the registry.
type APIError struct {
	StatusCode int
	Message    string
	ORCID      string
}

func (e *APIError) Error() string {
	if e.ORCID != "" {
		return fmt.Sprintf("ORCID API error (status %d): %s (orcid: %s)", e.StatusCode, e.Message, e.ORCID)
	}
	return fmt.Sprintf("ORCID API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates the iD was not found.
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
