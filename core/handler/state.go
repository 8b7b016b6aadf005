package handler

// State is the extensible per-request key/value store that before-stages
// use to hand data to later stages.
type State map[string]any

// Merge copies every entry of other into s. Keys are added or replaced,
// never removed.
func (s State) Merge(other State) {
	for k, v := range other {
		s[k] = v
	}
}

// Get returns the value stored under key.
func (s State) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// StateValue returns the value stored under key asserted to T.
func StateValue[T any](s State, key string) (T, bool) {
	v, ok := s[key].(T)
	return v, ok
}

// Query holds parsed query parameters. A key seen once maps to a string,
// a repeated key maps to a []string in order of appearance.
type Query map[string]any

// Get returns the first value for key, or "".
func (q Query) Get(key string) string {
	switch v := q[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Values returns every value for key.
func (q Query) Values(key string) []string {
	switch v := q[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	}
	return nil
}

// Has reports whether key was present in the query string.
func (q Query) Has(key string) bool {
	_, ok := q[key]
	return ok
}
