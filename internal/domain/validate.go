package domain

import (
	"net/url"
	"strings"
)

// ValidURL reports whether raw is an absolute URL with at least a scheme and a host.
func ValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}

	if u.Scheme == "" || u.Host == "" {
		return false
	}

	// "http://:8080" parses with a host of ":8080"
	return u.Hostname() != ""
}

// ValidCustomCode reports whether code is made only of ASCII letters, digits and
// hyphens and fits the persisted length bound.
func ValidCustomCode(code string) bool {
	if code == "" || len(code) > MaxShortCodeLength {
		return false
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
