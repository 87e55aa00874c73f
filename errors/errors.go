// Package errors defines the structured application error type used across
// handlers, middleware, and services, along with constructors for the
// error categories the API reports.
package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	RateLimitError  ErrorType = "RATE_LIMIT_EXCEEDED"
	DispatchError   ErrorType = "DISPATCH_FAILED"
	ServerError     ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error. Message is safe to
// return to clients; Detail and Raw are for server-side logging only.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	RetryAfter int       `json:"-"` // seconds, set for rate-limit errors
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// ValidationFailed reports a client-correctable problem with a submission.
// The message is returned to the client verbatim.
func ValidationFailed(message string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// RateLimitExceeded reports that the client identifier has exhausted its
// request window. retryAfter is the suggested wait, in seconds.
func RateLimitExceeded(message string, retryAfter int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}

// DispatchFailed wraps a failure from the email gateway. The client sees the
// generic message; the cause is preserved for logging.
func DispatchFailed(message string, err error) *AppError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &AppError{
		Type:       DispatchError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// InternalServerError reports an unexpected failure. The message should be
// generic; anything sensitive belongs in the wrapped error.
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case RateLimitError:
		return http.StatusTooManyRequests
	case DispatchError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
