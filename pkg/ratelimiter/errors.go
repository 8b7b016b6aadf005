package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid rate limiter configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	ErrNilStore          = errors.New("rate limiter store is required")
	ErrStoreUnavailable  = errors.New("rate limiter store unavailable")
	ErrAlreadyRunning    = errors.New("memory store cleanup already running")
)
