package router

import "strings"

// Normalize returns the canonical form of a request path or pattern:
// repeated separators are collapsed, a trailing separator is dropped unless
// the path is the root, and the result always starts with "/".
func Normalize(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	var b strings.Builder
	b.Grow(len(path) + 1)
	b.WriteByte('/')

	prevSlash := true
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > 1 && out[len(out)-1] == '/' {
		out = out[:len(out)-1]
	}
	return out
}

// Join prefixes pattern with prefix and normalizes the result.
func Join(prefix, pattern string) string {
	return Normalize(prefix + "/" + pattern)
}
