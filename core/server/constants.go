package server

import "time"

const (
	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second

	// DefaultMaxHeaderBytes is 1 MB.
	DefaultMaxHeaderBytes = 1 << 20
)
