package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// AcquisitionError is returned when every acquisition attempt for a target
// has been exhausted. It wraps the last underlying cause.
type AcquisitionError struct {
	URL      string
	Attempts int
	Wrapped  error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition failed for URL '%s' after %d attempt(s): %v", e.URL, e.Attempts, e.Wrapped)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Wrapped
}

// NewAcquisitionError creates a new acquisition error
func NewAcquisitionError(url string, attempts int, wrapped error) *AcquisitionError {
	return &AcquisitionError{
		URL:      url,
		Attempts: attempts,
		Wrapped:  wrapped,
	}
}

// DeliveryError represents a failure to deliver an alert on one channel
type DeliveryError struct {
	Channel string
	Reason  string
	Wrapped error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed on channel '%s': %s", e.Channel, e.Reason)
}

func (e *DeliveryError) Unwrap() error {
	return e.Wrapped
}

// NewDeliveryError creates a new delivery error
func NewDeliveryError(channel, reason string, wrapped error) *DeliveryError {
	return &DeliveryError{
		Channel: channel,
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// HTTPError represents HTTP-related errors
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d error for URL '%s': %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d error: %s", e.StatusCode, e.Message)
}

// NewHTTPErrorWithURL creates a new HTTP error with URL context
func NewHTTPErrorWithURL(statusCode int, message, url string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		URL:        url,
	}
}
