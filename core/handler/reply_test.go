package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
)

func TestReplyStatusOverwrittenUntilSend(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	reply := handler.NewReply(w)

	reply.Status(http.StatusCreated).Status(http.StatusAccepted)
	require.NoError(t, reply.Text("ok"))

	reply.Status(http.StatusTeapot)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, http.StatusAccepted, reply.StatusCode())
	assert.Equal(t, "ok", w.Body.String())
}

func TestReplySetHeaderFirstWins(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	reply := handler.NewReply(w)

	reply.SetHeader("X-Test", "first").SetHeader("X-Test", "second")
	require.NoError(t, reply.Send(nil))

	assert.Equal(t, "first", w.Header().Get("X-Test"))
	assert.Equal(t, "first", reply.Header("x-test"))
}

func TestReplyJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	reply := handler.NewReply(w)

	require.NoError(t, reply.JSON(map[string]int{"n": 1}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, w.Body.String())
	assert.True(t, reply.Sent())
	assert.Equal(t, len(`{"n":1}`), reply.Size())
}

func TestReplyJSONKeepsExplicitContentType(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	reply := handler.NewReply(w)

	reply.SetHeader("Content-Type", "application/problem+json")
	require.NoError(t, reply.JSON(map[string]string{"title": "oops"}))

	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestReplyJSONMarshalError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	reply := handler.NewReply(w)

	err := reply.JSON(make(chan int))
	require.Error(t, err)
	assert.False(t, reply.Sent())
}

func TestReplySecondSendRejected(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	reply := handler.NewReply(w)

	require.NoError(t, reply.Text("first"))

	assert.ErrorIs(t, reply.Text("second"), handler.ErrResponseSent)
	assert.ErrorIs(t, reply.JSON("second"), handler.ErrResponseSent)
	assert.ErrorIs(t, reply.Send([]byte("second")), handler.ErrResponseSent)
	assert.Equal(t, "first", w.Body.String())
}

type brokenWriter struct {
	header http.Header
	status int
}

func (w *brokenWriter) Header() http.Header { return w.header }

func (w *brokenWriter) WriteHeader(status int) { w.status = status }

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestReplyToleratesClosedConnection(t *testing.T) {
	t.Parallel()

	w := &brokenWriter{header: http.Header{}}
	reply := handler.NewReply(w)

	assert.NoError(t, reply.Text("lost"))
	assert.True(t, reply.Sent())
	assert.Equal(t, http.StatusOK, w.status)
}
