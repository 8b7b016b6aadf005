package router

import (
	"errors"
	"net/http"
)

var (
	// Registration errors
	ErrInvalidPattern = errors.New("invalid route path pattern")
	ErrDuplicateParam = errors.New("duplicate parameter name")
	ErrInvalidMethod  = errors.New("invalid http method")
	ErrNilHandler     = errors.New("nil handler")
	ErrNilMiddleware  = errors.New("nil middleware")
	ErrNilRouter      = errors.New("nil router")
	ErrSelfMount      = errors.New("router cannot be mounted into itself")
	ErrRouterFrozen   = errors.New("router is serving requests, registration is closed")

	// Runtime errors
	ErrNoResponseWritten = errors.New("handler did not write a response")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code for the fallback response.
type statusCode interface {
	StatusCode() int
}

// fallbackStatus picks the status of the generic fallback response.
func fallbackStatus(err error) int {
	var sc statusCode
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}
