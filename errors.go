package gqlserve

import "fmt"

// ClientSafeError is implemented by errors whose messages are safe to show to
// clients. Messages of other errors are redacted from results unless the server
// is in debug mode.
type ClientSafeError interface {
	error
	ClientSafe() bool
}

// RequestError indicates that the client's request was malformed, e.g. because
// it named a persisted query that doesn't exist or provided neither a query nor
// a query id. Request errors are always client-safe.
type RequestError struct {
	message string
}

// NewRequestError returns a client-safe error with the given message.
func NewRequestError(message string) *RequestError {
	return &RequestError{message: message}
}

func (e *RequestError) Error() string {
	return e.message
}

func (e *RequestError) ClientSafe() bool {
	return true
}

// ConfigurationError indicates that the server itself is misconfigured for the
// operation it was asked to perform. Configuration errors are returned to the
// caller of ExecuteOperation and never appear inside a Result, so callers can
// always tell a broken server apart from a bad query.
type ConfigurationError struct {
	message string
	cause   error
}

func newConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Cause returns the underlying error, if there is one.
func (e *ConfigurationError) Cause() error {
	return e.cause
}

func (e *ConfigurationError) Unwrap() error {
	return e.cause
}

// IsConfigurationError returns true if the given error was produced by a
// misconfigured server rather than a bad request.
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

func isClientSafe(err error) bool {
	cs, ok := err.(ClientSafeError)
	return ok && cs.ClientSafe()
}
