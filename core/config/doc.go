// Package config fills env-tagged structs from the process environment.
//
// A .env file in the working directory is read once, on the first Load, and
// never overrides variables that are already set. Parsing is done by
// github.com/caarlos0/env, so the usual env, envDefault and envSeparator
// tags apply, as does the ",required" flag.
//
//	type Config struct {
//		Addr    string        `env:"SERVER_ADDR" envDefault:":8080"`
//		Timeout time.Duration `env:"SERVER_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// The parsed value is cached per type: later loads of the same type copy the
// cached value and do not look at the environment again. Reset drops the
// cache so tests can load again after t.Setenv.
package config
