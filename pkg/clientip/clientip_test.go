package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/waypoint/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		expected   string
	}{
		{"forwarded single", "203.0.113.7", "10.0.0.1:5000", "203.0.113.7"},
		{"forwarded chain takes first", " 203.0.113.7 , 10.0.0.2, 10.0.0.3", "10.0.0.1:5000", "203.0.113.7"},
		{"forwarded ipv6", "2001:db8::1, 10.0.0.2", "10.0.0.1:5000", "2001:db8::1"},
		{"empty first entry falls back", " , 10.0.0.2", "10.0.0.1:5000", "10.0.0.1"},
		{"remote addr with port", "", "192.0.2.10:1234", "192.0.2.10"},
		{"remote ipv6 with port", "", "[::1]:8080", "::1"},
		{"remote addr without port", "", "192.0.2.10", "192.0.2.10"},
		{"nothing available", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}

			assert.Equal(t, tt.expected, clientip.GetIP(r))
		})
	}
}
