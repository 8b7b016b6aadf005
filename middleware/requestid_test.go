package middleware_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/middleware"
)

func TestRequestIDDefault(t *testing.T) {
	t.Parallel()

	var captured string
	r := newRouter(func(ctx *handler.Context) error {
		captured = ctx.RequestID
		return ctx.Reply.Text("ok")
	}, middleware.RequestID())

	w := do(r, request(http.MethodGet, nil, "X-Request-ID", "incoming"))

	require.NotEmpty(t, captured)
	assert.NotEqual(t, "incoming", captured)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
}

func TestRequestIDCustomGenerator(t *testing.T) {
	t.Parallel()

	var captured string
	r := newRouter(func(ctx *handler.Context) error {
		captured = ctx.RequestID
		return ctx.Reply.Text("ok")
	}, middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:  func() string { return "custom-123" },
		HeaderName: "X-Trace-ID",
	}))

	w := do(r, request(http.MethodGet, nil))

	assert.Equal(t, "custom-123", captured)
	assert.Equal(t, "custom-123", w.Header().Get("X-Trace-ID"))
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		kept     bool
	}{
		{"valid", "abc-123", true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 129), false},
		{"control chars", "abc\tdef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			r := newRouter(func(ctx *handler.Context) error {
				captured = ctx.RequestID
				return ctx.Reply.Text("ok")
			}, middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true}))

			req := request(http.MethodGet, nil)
			if tt.incoming != "" {
				req.Header["X-Request-Id"] = []string{tt.incoming}
			}
			w := do(r, req)

			if tt.kept {
				assert.Equal(t, tt.incoming, captured)
			} else {
				assert.NotEqual(t, tt.incoming, captured)
				assert.NotEmpty(t, captured)
			}
			assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	r := newRouter(ok, middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Skip: func(*handler.Context) bool { return true },
	}))

	w := do(r, request(http.MethodGet, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}
