package app

import "errors"

var (
	ErrNilLogger = errors.New("logger cannot be nil")
	ErrNilRouter = errors.New("router cannot be nil")
	ErrNilServer = errors.New("server cannot be nil")
	ErrNilStore  = errors.New("rate limiter store cannot be nil")
)
