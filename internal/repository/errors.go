package repository

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for registry calls.
type ErrorCategory string

const (
	// ErrorTransport means the request never produced an HTTP response
	// (connection refused, DNS, timeout, cancelled context).
	ErrorTransport ErrorCategory = "transport"

	// ErrorStatus means the registry answered with a non-2xx status.
	ErrorStatus ErrorCategory = "status"

	// ErrorDecode means a 2xx body was empty or not the expected JSON.
	ErrorDecode ErrorCategory = "decode"
)

// UpstreamError wraps a failed registry call.
type UpstreamError struct {
	Category   ErrorCategory
	Method     string
	Path       string
	StatusCode int
	Underlying error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	switch {
	case e.Category == ErrorStatus:
		return fmt.Sprintf("registry %s %s [%s]: status %d", e.Method, e.Path, e.Category, e.StatusCode)
	case e.Underlying != nil:
		return fmt.Sprintf("registry %s %s [%s]: %v", e.Method, e.Path, e.Category, e.Underlying)
	default:
		return fmt.Sprintf("registry %s %s [%s]", e.Method, e.Path, e.Category)
	}
}

// Unwrap supports errors.Is/As on the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Underlying
}

// CategoryOf returns the category of a registry error, or "" when err is
// not an *UpstreamError.
func CategoryOf(err error) ErrorCategory {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Category
	}
	return ""
}
