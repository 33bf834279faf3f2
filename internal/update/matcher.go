package update

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyPattern indicates a targeted update was requested without a name
// pattern to match against.
var ErrEmptyPattern = errors.New("empty name pattern")

// Matcher matches catalog entry names against a shell-style glob pattern.
// Matching is case-insensitive and anchored: the whole name must match. A
// pattern with no glob metacharacters is treated as a substring search, so
// a bare "okhttp" matches "my-okhttp-client".
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewMatcher compiles a glob pattern. Only * (any run) and ? (any single
// character) are special; everything else matches literally.
func NewMatcher(pattern string) (*Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	raw := pattern
	if !strings.ContainsAny(raw, "*?") {
		raw = "*" + raw + "*"
	}

	var sb strings.Builder
	sb.WriteString("(?i)^")
	for _, r := range raw {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	return &Matcher{pattern: pattern, re: regexp.MustCompile(sb.String())}, nil
}

// Pattern returns the pattern the matcher was built from.
func (m *Matcher) Pattern() string { return m.pattern }

// Match reports whether name satisfies the pattern.
func (m *Matcher) Match(name string) bool { return m.re.MatchString(name) }
