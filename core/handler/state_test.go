package handler_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/waypoint/core/handler"
)

func TestStateMergeIsAdditive(t *testing.T) {
	t.Parallel()

	s := handler.State{"user": "alice", "role": "admin"}
	s.Merge(handler.State{"tenant": "acme", "role": "owner"})

	assert.Equal(t, handler.State{"user": "alice", "role": "owner", "tenant": "acme"}, s)

	role, ok := handler.StateValue[string](s, "role")
	assert.True(t, ok)
	assert.Equal(t, "owner", role)

	_, ok = handler.StateValue[int](s, "role")
	assert.False(t, ok)
}

func TestQueryAccessors(t *testing.T) {
	t.Parallel()

	q := handler.Query{"x": []string{"1", "2"}, "y": "3"}

	assert.Equal(t, "1", q.Get("x"))
	assert.Equal(t, []string{"1", "2"}, q.Values("x"))
	assert.Equal(t, "3", q.Get("y"))
	assert.Equal(t, []string{"3"}, q.Values("y"))
	assert.Equal(t, "", q.Get("z"))
	assert.Nil(t, q.Values("z"))
	assert.True(t, q.Has("y"))
	assert.False(t, q.Has("z"))
}

func TestContextDelegatesToRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/users/1?a=b", nil)
	ctx := handler.NewContext(httptest.NewRecorder(), r)
	ctx.Headers = map[string]string{"x-trace": "abc"}
	ctx.Params["id"] = "1"

	assert.Same(t, r, ctx.Request())
	assert.Equal(t, "GET", ctx.Method)
	assert.Equal(t, "/users/1?a=b", ctx.URL)
	assert.Equal(t, "1", ctx.Param("id"))
	assert.Equal(t, "abc", ctx.Header("X-Trace"))
	assert.NoError(t, ctx.Err())
	assert.NotNil(t, ctx.Reply)
	assert.NotNil(t, ctx.State)
}

func TestStageErrorUnwraps(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &handler.StageError{Stage: handler.StageAfter, Index: 2, Err: base})

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "wrapped: after stage 2: boom", err.Error())

	var se *handler.StageError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, handler.StageAfter, se.Stage)
}

func TestPanicErrorUnwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("nil map")
	assert.ErrorIs(t, &handler.PanicError{Value: base}, base)
	assert.Nil(t, (&handler.PanicError{Value: "text"}).Unwrap())
	assert.Equal(t, "panic: text", (&handler.PanicError{Value: "text"}).Error())
}

func TestStageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "before", handler.StageBefore.String())
	assert.Equal(t, "finally", handler.StageFinally.String())
	assert.Equal(t, "unknown", handler.Stage(42).String())
}
