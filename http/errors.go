// Package http provides the shared transport core for the Taiga API client:
// an authenticated HTTP client, typed API errors, and the pagination engine.
package http

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors surfaced by the transport.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates invalid or missing authentication.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the user lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")

	// ErrBadRequest indicates the request carried invalid data.
	ErrBadRequest = errors.New("invalid data")

	// ErrVersionConflict indicates a write carried a stale resource version
	// and was rejected because the resource was concurrently modified.
	ErrVersionConflict = errors.New("version conflict: resource was concurrently modified")

	// ErrPayloadTooLarge indicates an upload exceeded the service's size limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// APIError represents an error response from the remote API.
type APIError struct {
	// Service is the name of the remote service (e.g. "taiga").
	Service string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the error message extracted from the response body.
	Message string

	// Endpoint is the API path that was called.
	Endpoint string

	// RequestID is the correlation ID attached to the request.
	RequestID string

	// VersionConflict is set when a 400 response carried the service's
	// stale-version rejection rather than a generic validation failure.
	VersionConflict bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s API error (%d) at %s [%s]: %s",
			e.Service, e.StatusCode, e.Endpoint, e.RequestID, e.Message)
	}
	return fmt.Sprintf("%s API error (%d) at %s: %s",
		e.Service, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap returns the underlying sentinel error based on status code.
// A 400 response that the service marked as a stale-version rejection
// unwraps to ErrVersionConflict instead of ErrBadRequest.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		if e.VersionConflict {
			return ErrVersionConflict
		}
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsNotFound reports whether the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden reports whether the error indicates permission was denied.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsVersionConflict reports whether the error indicates a stale-version write.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsPayloadTooLarge reports whether the error indicates an oversized upload.
func IsPayloadTooLarge(err error) bool {
	return errors.Is(err, ErrPayloadTooLarge)
}

// IsRetryable reports whether the error is transient and worth retrying.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
	}

	return false
}
