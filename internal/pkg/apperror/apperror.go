package apperror

import (
	"errors"
	"fmt"
)

// AppError is the failure type services raise; the error-handler middleware
// maps it onto the JSON response envelope.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Taxonomy used across the proxy layer.

func Unauthenticated(message string) *AppError {
	if message == "" {
		message = "Not authenticated"
	}
	return New(401, message)
}

func Validation(message string) *AppError {
	return New(400, message)
}

func NotFound(message string) *AppError {
	return New(404, message)
}

// UpstreamUnavailable covers network failures and non-2xx upstream statuses.
func UpstreamUnavailable(err error) *AppError {
	return Wrap(502, "Upstream error", err)
}

// UpstreamMalformed covers empty or undecodable upstream bodies. Treated the
// same as unavailable from the client's point of view.
func UpstreamMalformed(err error) *AppError {
	return Wrap(502, "Upstream returned an unreadable response", err)
}

func Internal(err error) *AppError {
	return Wrap(500, "Internal error", err)
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
