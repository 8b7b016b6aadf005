package clientip

import (
	"net"
	"net/http"
	"strings"
)

// HeaderForwardedFor is the proxy header consulted before RemoteAddr.
const HeaderForwardedFor = "X-Forwarded-For"

// GetIP returns the client IP address of r.
func GetIP(r *http.Request) string {
	if xff := r.Header.Get(HeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	return remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	if addr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
