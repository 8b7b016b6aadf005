package logger

import (
	"log/slog"
	"time"
)

// Helpers that take optional values return the zero slog.Attr for empty
// input. slog handlers drop zero attributes, so callers pass them as is.

// Error logs err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Stack logs a captured goroutine stack as a string.
func Stack(stack []byte) slog.Attr {
	if len(stack) == 0 {
		return slog.Attr{}
	}
	return slog.String("stack", string(stack))
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Latency is the time spent serving a request.
func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path is the normalized request path.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Route is the pattern of the matched route, omitted for unmatched requests.
func Route(pattern string) slog.Attr {
	if pattern == "" {
		return slog.Attr{}
	}
	return slog.String("route", pattern)
}

// Query is the raw query string.
func Query(q string) slog.Attr {
	if q == "" {
		return slog.Attr{}
	}
	return slog.String("query", q)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

func UserAgent(ua string) slog.Attr {
	if ua == "" {
		return slog.Attr{}
	}
	return slog.String("user_agent", ua)
}

// BytesOut is the size of the response body.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Component names the subsystem that emitted the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Stage names a request pipeline stage (before, handler, after, finally).
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// Index is the position of a stage within its chain.
func Index(i int) slog.Attr {
	return slog.Int("index", i)
}
