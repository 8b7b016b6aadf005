package response_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

type customStatusError struct {
	status int
}

func (e customStatusError) Error() string   { return "custom failure" }
func (e customStatusError) StatusCode() int { return e.status }

type envelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func serveError(t *testing.T, log *slog.Logger, h handler.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := router.New()
	r.Finally(response.ErrorResponder(log))
	r.Get("/", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestErrorResponderHTTPError(t *testing.T) {
	t.Parallel()

	w, body := serveError(t, nil, func(*handler.Context) error {
		return response.ErrNotFound.WithMessage("item not found").WithDetails(map[string]any{"id": "42"})
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, "item not found", body.Error.Message)
	assert.Equal(t, map[string]any{"id": "42"}, body.Error.Details)
}

func TestErrorResponderWrappedHTTPError(t *testing.T) {
	t.Parallel()

	w, body := serveError(t, nil, func(*handler.Context) error {
		return fmt.Errorf("loading order: %w", response.ErrConflict)
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", body.Error.Code)
}

func TestErrorResponderStatusCodeInterface(t *testing.T) {
	t.Parallel()

	w, body := serveError(t, nil, func(*handler.Context) error {
		return customStatusError{status: http.StatusUnprocessableEntity}
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "unprocessable_entity", body.Error.Code)
	assert.Equal(t, "custom failure", body.Error.Details["cause"])
}

func TestErrorResponderUnknownError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	w, body := serveError(t, log, func(*handler.Context) error {
		return errors.New("database password is hunter2")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_server_error", body.Error.Code)
	assert.Equal(t, "Internal Server Error", body.Error.Message)
	assert.Empty(t, body.Error.Details)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Contains(t, buf.String(), "request failed")
}

func TestErrorResponderPanicIsLoggedWithStack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	w, body := serveError(t, log, func(*handler.Context) error {
		panic("boom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_server_error", body.Error.Code)
	assert.Contains(t, buf.String(), `"stack":`)
}

func TestErrorResponderNoError(t *testing.T) {
	t.Parallel()

	w, _ := serveError(t, nil, func(ctx *handler.Context) error {
		return ctx.Reply.Text("fine")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}

func TestErrorResponderSkipsSentReply(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.Finally(response.ErrorResponder(nil))
	r.Get("/", func(ctx *handler.Context) error {
		_ = ctx.Reply.Status(http.StatusAccepted).Text("partial")
		return response.ErrBadRequest
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestErrorResponderBeforeStageError(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.UseBefore(func(*handler.Context, handler.Next) error { return response.ErrUnauthorized })
	r.Finally(response.ErrorResponder(nil))
	r.Get("/", func(ctx *handler.Context) error { return ctx.Reply.Text("secret") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"Unauthorized"}}`, w.Body.String())
}
