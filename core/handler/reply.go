package handler

import (
	"encoding/json"
	"net/http"
)

// Reply is the response-writing capability exposed to stages through
// Context.Reply. Headers are set only if absent, the status may change until
// the first send, and exactly one send reaches the underlying writer.
type Reply struct {
	w      http.ResponseWriter
	status int
	sent   bool
	size   int
}

// NewReply wraps w.
func NewReply(w http.ResponseWriter) *Reply {
	return &Reply{w: w, status: http.StatusOK}
}

// Status sets the response status code. Ignored once the response is sent.
func (r *Reply) Status(code int) *Reply {
	if !r.sent {
		r.status = code
	}
	return r
}

// SetHeader sets a response header unless it already has a value.
func (r *Reply) SetHeader(name, value string) *Reply {
	h := r.w.Header()
	if h.Get(name) == "" {
		h.Set(name, value)
	}
	return r
}

// DelHeader removes a response header. Ignored once the response is sent.
func (r *Reply) DelHeader(name string) *Reply {
	if !r.sent {
		r.w.Header().Del(name)
	}
	return r
}

// Header returns the current value of a response header.
func (r *Reply) Header(name string) string {
	return r.w.Header().Get(name)
}

// JSON encodes v and sends it with an application/json content type.
func (r *Reply) JSON(v any) error {
	if r.sent {
		return ErrResponseSent
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.SetHeader("Content-Type", "application/json; charset=utf-8")
	return r.Send(b)
}

// Text sends s as text/plain.
func (r *Reply) Text(s string) error {
	if r.sent {
		return ErrResponseSent
	}
	r.SetHeader("Content-Type", "text/plain; charset=utf-8")
	return r.Send([]byte(s))
}

// Send writes the status line, headers and body, finalizing the response.
// Write failures of the underlying connection are ignored: the client is
// gone and there is nobody left to tell.
func (r *Reply) Send(body []byte) error {
	if r.sent {
		return ErrResponseSent
	}
	r.sent = true
	r.w.WriteHeader(r.status)
	if len(body) > 0 {
		n, _ := r.w.Write(body)
		r.size = n
	}
	return nil
}

// Sent reports whether the response has been finalized.
func (r *Reply) Sent() bool {
	return r.sent
}

// StatusCode returns the status that was, or will be, sent.
func (r *Reply) StatusCode() int {
	return r.status
}

// Size returns the number of body bytes written.
func (r *Reply) Size() int {
	return r.size
}

// Flush implements http.Flusher if the underlying writer supports it.
func (r *Reply) Flush() {
	if f, ok := r.w.(http.Flusher); ok {
		f.Flush()
	}
}
