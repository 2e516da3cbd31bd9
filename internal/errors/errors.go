// Package errors provides the error taxonomy for quote lookups.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrRateLimited     = errors.New("rate limit reached")
	ErrNotFound        = errors.New("no data for symbol")
	ErrNetwork         = errors.New("network failure")
	ErrInvalidResponse = errors.New("invalid response format")
)

// RateLimitError is returned when the quote service answers with its throttling marker
type RateLimitError struct {
	Message  string
	Endpoint string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit reached"
	}
	return fmt.Sprintf("rate limit reached: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *RateLimitError) Is(target error) bool {
	if target == ErrRateLimited {
		return true
	}
	_, ok := target.(*RateLimitError)
	return ok
}

// NewRateLimitError creates a new RateLimitError
func NewRateLimitError(endpoint, message string) *RateLimitError {
	return &RateLimitError{Endpoint: endpoint, Message: message}
}

// NotFoundError means the response was well formed but carried no data for the symbol
type NotFoundError struct {
	Symbol string
	Key    string // top-level key that was missing or empty
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no data for symbol %s (missing %q)", e.Symbol, e.Key)
}

// Is allows comparison with sentinel errors
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	_, ok := target.(*NotFoundError)
	return ok
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(symbol, key string) *NotFoundError {
	return &NotFoundError{Symbol: symbol, Key: key}
}

// NetworkError wraps a transport failure
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s failed at %s: %v", e.Operation, e.Endpoint, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// APIError represents a non-200 answer from the quote service
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// WithBody attaches a (truncated) response body for diagnostics
func (e *APIError) WithBody(body string) *APIError {
	const maxBody = 2048
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	e.Body = body
	return e
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsRateLimitError reports whether err carries the throttling marker
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNotFoundError reports whether err means "no data for this symbol"
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsParseError reports whether err is a malformed payload
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// GetHTTPStatus extracts the HTTP status from an APIError, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from any error type that records one
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr.Endpoint
	}
	return ""
}

// GetResponseBody extracts the diagnostic body from an APIError
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}
