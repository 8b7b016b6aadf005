package config

import "errors"

var (
	ErrNilConfig = errors.New("config: nil destination")
	ErrParsing   = errors.New("config: failed to parse environment")
)
