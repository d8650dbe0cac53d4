package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated covers missing, invalid, expired or malformed
	// credentials. Terminal for the operation, never retried.
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	// ErrUnauthorized means the caller is not a participant of the
	// targeted room (or not the sender of the targeted message).
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrNotFound     = fmt.Errorf("not found")
	// ErrUpstream wraps any failed or errored external store call.
	// Mutations are not idempotent, so upstream failures are never
	// retried automatically.
	ErrUpstream       = fmt.Errorf("upstream store failure")
	ErrMalformedInput = fmt.Errorf("malformed input")
)

// HTTPStatus maps the error taxonomy to a response status code.
// Upstream failures deliberately surface as an opaque 502.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
