// Package clientip resolves the client IP address of an HTTP request.
//
// # Resolution Order
//
//  1. The first comma-separated entry of X-Forwarded-For, trimmed
//  2. The host part of the transport-level RemoteAddr
//  3. An empty string when neither is available
//
// X-Forwarded-For may contain multiple addresses, "client, proxy1, proxy2";
// the leftmost one is the original client:
//
//	ip := clientip.GetIP(r)
//	log.Info("request", logger.ClientIP(ip))
//
// # Trust
//
// X-Forwarded-For is supplied by the client unless a proxy overwrites it.
// Deploy behind a proxy that sets the header before relying on the value for
// access control.
//
// # Error Handling
//
// The function never panics and always returns a string. A RemoteAddr that
// cannot be split into host and port is returned as is.
package clientip
