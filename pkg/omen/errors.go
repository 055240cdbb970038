package omen

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors that can be wrapped with context.
var (
	ErrMissingAuth      = errors.New("no Omen API token or authorizer was provided")
	ErrAppNameRequired  = errors.New("app name is required to make calls to the Omen API")
	ErrBaseURLRequired  = errors.New("API base URL is required")
	ErrConfigRequired   = errors.New("config is required")
	ErrTokenNotFound    = errors.New("no API token found in environment")
	ErrInvalidProxyURL  = errors.New("invalid proxy URL")
	ErrCacheDisabled    = errors.New("cache disabled")
	ErrCacheKeyNotFound = errors.New("key not found")
	ErrCacheEntryStale  = errors.New("entry expired")
)

// Response is the buffered result of an API request. Error types carry it so
// callers can inspect status and headers of the failing exchange.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// ContentType returns the response Content-Type header, or "" if unset.
func (r *Response) ContentType() string {
	if r == nil || r.Headers == nil {
		return ""
	}

	return r.Headers.Get("Content-Type")
}

// StatusError is the generic error produced for any non-2xx response before
// error-body translation. It is what surfaces unchanged when the body carries
// no structured error.
type StatusError struct {
	StatusCode int
	Response   *Response
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from Omen API", e.StatusCode)
}

// AuthenticationError is returned for HTTP 401 responses carrying a
// structured error body. It wraps the originating StatusError.
type AuthenticationError struct {
	Message  string
	Response *Response
	cause    error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}

	return "authentication failed: " + e.Message
}

// Unwrap returns the originating transport error.
func (e *AuthenticationError) Unwrap() error {
	return e.cause
}

// NewAuthenticationError builds an AuthenticationError chained from cause.
func NewAuthenticationError(message string, response *Response, cause error) *AuthenticationError {
	return &AuthenticationError{Message: message, Response: response, cause: cause}
}

// HTTPError is returned for any other non-2xx response carrying a structured
// error body. It wraps the originating StatusError.
type HTTPError struct {
	Message    string
	StatusCode int
	Response   *Response
	cause      error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("Omen API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap returns the originating transport error.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// NewHTTPError builds an HTTPError chained from cause.
func NewHTTPError(message string, response *Response, cause error) *HTTPError {
	httpErr := &HTTPError{Message: message, Response: response, cause: cause}
	if response != nil {
		httpErr.StatusCode = response.StatusCode
	}

	return httpErr
}

// JSONParseError is returned when a response expected to be JSON fails to
// decode. It wraps the underlying decode error.
type JSONParseError struct {
	Message  string
	Response *Response
	cause    error
}

// Error implements the error interface.
func (e *JSONParseError) Error() string {
	return "parsing JSON response: " + e.Message
}

// Unwrap returns the underlying decode error.
func (e *JSONParseError) Unwrap() error {
	return e.cause
}

// NewJSONParseError builds a JSONParseError chained from cause.
func NewJSONParseError(response *Response, cause error) *JSONParseError {
	parseErr := &JSONParseError{Response: response, cause: cause}
	if cause != nil {
		parseErr.Message = cause.Error()
	}

	return parseErr
}

// IsMissingAuth checks if the error indicates missing credentials.
func IsMissingAuth(err error) bool {
	return errors.Is(err, ErrMissingAuth)
}

// IsAuthentication checks if the error is an authentication failure.
func IsAuthentication(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsJSONParse checks if the error is a JSON decode failure.
func IsJSONParse(err error) bool {
	parseErr := &JSONParseError{}

	return errors.As(err, &parseErr)
}

// StatusCode extracts the HTTP status code from an API error, or 0 if the
// error did not originate from an HTTP response.
func StatusCode(err error) int {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) && authErr.Response != nil {
		return authErr.Response.StatusCode
	}

	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	return 0
}
