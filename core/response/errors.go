package response

import (
	"maps"
	"net/http"
)

// HTTPError is an error with an HTTP status and a JSON representation.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewHTTPError creates a 500 internal_server_error with the given message.
func NewHTTPError(message string) HTTPError {
	return ErrInternalServerError.WithMessage(message)
}

func newHTTPError(status int, code string) HTTPError {
	e := HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
	byStatus[status] = e
	return e
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode reports the HTTP status. The router fallback consults it too.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy with details merged over the existing ones.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	merged := maps.Clone(e.Details)
	if merged == nil {
		merged = make(map[string]any, len(details))
	}
	maps.Copy(merged, details)
	e.Details = merged
	return e
}

// WithError returns a copy with the cause recorded under the "cause" detail.
func (e HTTPError) WithError(err error) HTTPError {
	if err == nil {
		return e
	}
	return e.WithDetails(map[string]any{"cause": err.Error()})
}

var byStatus = map[int]HTTPError{}

// Predefined errors with the status text as message.
var (
	// 4xx
	ErrBadRequest            = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized          = newHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden             = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound              = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrNotAcceptable         = newHTTPError(http.StatusNotAcceptable, "not_acceptable")
	ErrRequestTimeout        = newHTTPError(http.StatusRequestTimeout, "request_timeout")
	ErrConflict              = newHTTPError(http.StatusConflict, "conflict")
	ErrGone                  = newHTTPError(http.StatusGone, "gone")
	ErrLengthRequired        = newHTTPError(http.StatusLengthRequired, "length_required")
	ErrPreconditionFailed    = newHTTPError(http.StatusPreconditionFailed, "precondition_failed")
	ErrRequestEntityTooLarge = newHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType  = newHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity   = newHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests       = newHTTPError(http.StatusTooManyRequests, "too_many_requests")

	// 5xx
	ErrInternalServerError = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented      = newHTTPError(http.StatusNotImplemented, "not_implemented")
	ErrBadGateway          = newHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout      = newHTTPError(http.StatusGatewayTimeout, "gateway_timeout")
)
