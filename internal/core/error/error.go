package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// GatewayErrorMessage describes LLM gateway failures (timeout, transport,
	// schema violation). A turn that ends with this is distinct from a turn
	// that completed with zero results.
	GatewayErrorMessage = "language model request failed"
	// CatalogErrorMessage describes catalog load failures; these are fatal at startup.
	CatalogErrorMessage = "catalog load failed"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing or expired key.
	RedisNotFoundMessage = "key not found"
	// JobNotFoundMessage describes a lookup of an unknown or expired job.
	JobNotFoundMessage = "job not found"
)

// Error wraps an underlying error with an HTTP status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapGateway marks an error as an LLM gateway failure.
func WrapGateway(err error) *Error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, GatewayErrorMessage)
}

// IsGateway reports whether err is (or wraps) a gateway failure.
func IsGateway(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Message == GatewayErrorMessage
	}
	return false
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
