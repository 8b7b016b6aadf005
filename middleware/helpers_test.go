package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

func ok(ctx *handler.Context) error {
	return ctx.Reply.Text("ok")
}

// newRouter registers h on every method at /test behind the given stages,
// with ErrorResponder as the only finally-stage.
func newRouter(h handler.HandlerFunc, stages ...handler.BeforeFunc) *router.Router {
	r := router.New()
	if len(stages) > 0 {
		r.UseBefore(stages...)
	}
	r.Finally(response.ErrorResponder(nil))
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodPut} {
		r.Handle(m, "/test", h)
	}
	return r
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func request(method string, body io.Reader, headers ...string) *http.Request {
	req := httptest.NewRequest(method, "/test", body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return req
}

func httptestRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}
