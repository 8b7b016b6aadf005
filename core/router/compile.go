package router

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher is the compiled form of a route pattern.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
	params  []string
}

// Compile turns a normalized pattern such as "/users/:id/posts/:post" into a
// Matcher. Each ":name" directly after a separator captures one non-empty
// path segment. A name used twice in one pattern is rejected with
// ErrDuplicateParam.
func Compile(pattern string) (*Matcher, error) {
	var (
		expr   strings.Builder
		params []string
		seen   = map[string]struct{}{}
	)

	expr.WriteByte('^')
	for i := 0; i < len(pattern); {
		if pattern[i] == ':' && i > 0 && pattern[i-1] == '/' {
			j := i + 1
			for j < len(pattern) && isNameByte(pattern[j]) {
				j++
			}
			name := pattern[i+1 : j]
			if name == "" {
				return nil, fmt.Errorf("%w: empty parameter name in '%s'", ErrInvalidPattern, pattern)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("%w: ':%s' in '%s'", ErrDuplicateParam, name, pattern)
			}
			seen[name] = struct{}{}
			params = append(params, name)
			expr.WriteString("([^/]+)")
			i = j
			continue
		}

		j := i + 1
		for j < len(pattern) && !(pattern[j] == ':' && pattern[j-1] == '/') {
			j++
		}
		expr.WriteString(regexp.QuoteMeta(pattern[i:j]))
		i = j
	}
	expr.WriteByte('$')

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInvalidPattern, pattern, err)
	}

	return &Matcher{pattern: pattern, re: re, params: params}, nil
}

// Match tests a decoded, normalized path against the pattern and returns
// the captured parameters as they appear in path.
func (m *Matcher) Match(path string) (map[string]string, bool) {
	if len(m.params) == 0 {
		return nil, path == m.pattern
	}

	groups := m.re.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}

	params := make(map[string]string, len(m.params))
	for i, name := range m.params {
		params[name] = groups[i+1]
	}
	return params, true
}

// Params returns the parameter names in declaration order.
func (m *Matcher) Params() []string {
	return m.params
}

// Pattern returns the pattern the matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Static reports whether the pattern has no parameters.
func (m *Matcher) Static() bool {
	return len(m.params) == 0
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
