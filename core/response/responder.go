package response

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
)

// statusCode is implemented by errors that know their HTTP status.
type statusCode interface {
	StatusCode() int
}

// errorBody is the JSON envelope written by ErrorResponder.
type errorBody struct {
	Error HTTPError `json:"error"`
}

// FromError converts any error into an HTTPError. An HTTPError anywhere in
// the chain is returned as is. Otherwise the StatusCode() of the error
// selects a predefined error, falling back to ErrInternalServerError.
// Client errors carry the original message as the "cause" detail; server
// errors never expose it.
func FromError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := byStatus[status]
	if !ok {
		return ErrInternalServerError
	}
	if status < http.StatusInternalServerError {
		var se *handler.StageError
		if errors.As(err, &se) {
			err = se.Err
		}
		return base.WithError(err)
	}
	return base
}

// ErrorResponder returns a finally-stage that writes captured errors as
// {"error":{"code","message","details"}} JSON. It does nothing when there
// is no error or a response was already sent. Server errors are logged,
// with the stack when the error is a recovered panic.
func ErrorResponder(log *slog.Logger) handler.FinallyFunc {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(ctx *handler.Context, err error) error {
		if err == nil {
			return nil
		}

		httpErr := FromError(err)

		if httpErr.Status >= http.StatusInternalServerError {
			attrs := []slog.Attr{
				logger.Component("response"),
				logger.RequestID(ctx.RequestID),
				logger.Method(ctx.Method),
				logger.Path(ctx.Path),
				logger.StatusCode(httpErr.Status),
				logger.Error(err),
			}
			var pe *handler.PanicError
			if errors.As(err, &pe) {
				attrs = append(attrs, logger.Stack(pe.Stack))
			}
			log.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
		}

		if ctx.Reply.Sent() {
			return nil
		}

		return ctx.Reply.Status(httpErr.Status).JSON(errorBody{Error: httpErr})
	}
}
