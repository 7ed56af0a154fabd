package search

import "errors"

// ClientError marks a malformed request: missing tenant context, no
// deletion selector, suggestion query too short. Surfaced verbatim, never
// retried.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string { return e.Message }

// NewClientError creates a ClientError
func NewClientError(message string) error {
	return &ClientError{Message: message}
}

// UnauthorizedError marks an absent caller identity, distinct from
// ClientError so callers can tell "malformed" from "not who you claim".
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NewUnauthorizedError creates an UnauthorizedError
func NewUnauthorizedError(message string) error {
	return &UnauthorizedError{Message: message}
}

// IsClientError reports whether err is a ClientError
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

// IsUnauthorizedError reports whether err is an UnauthorizedError
func IsUnauthorizedError(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}
