package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "https url", input: "https://example.com", want: true},
		{name: "http url with path and query", input: "http://example.com/a/b?c=d#e", want: true},
		{name: "url with port", input: "https://example.com:8443/x", want: true},
		{name: "surrounding spaces", input: "  https://example.com  ", want: true},
		{name: "not a url", input: "not-a-url", want: false},
		{name: "missing scheme", input: "example.com/path", want: false},
		{name: "missing host", input: "https://", want: false},
		{name: "port only host", input: "http://:8080", want: false},
		{name: "relative path", input: "/just/a/path", want: false},
		{name: "empty", input: "", want: false},
		{name: "whitespace", input: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidURL(tt.input); got != tt.want {
				t.Errorf("ValidURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidCustomCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "letters and hyphen", input: "my-link", want: true},
		{name: "digits", input: "2025", want: true},
		{name: "mixed case", input: "GoLang-Rocks", want: true},
		{name: "max length", input: strings.Repeat("a", MaxShortCodeLength), want: true},
		{name: "too long", input: strings.Repeat("a", MaxShortCodeLength+1), want: false},
		{name: "empty", input: "", want: false},
		{name: "underscore", input: "my_link", want: false},
		{name: "space", input: "my link", want: false},
		{name: "slash", input: "a/b", want: false},
		{name: "non ascii", input: "café", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCustomCode(tt.input); got != tt.want {
				t.Errorf("ValidCustomCode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestErrorMessageAndKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{name: "invalid url", err: ErrInvalidURL, wantKind: "invalid_url"},
		{name: "wrapped custom code", err: fmt.Errorf("%w: bad", ErrInvalidCustomCode), wantKind: "invalid_custom_code"},
		{name: "exists", err: ErrCodeAlreadyExists, wantKind: "code_already_exists"},
		{name: "exhausted", err: ErrAllocationExhausted, wantKind: "allocation_exhausted"},
		{name: "missing user", err: ErrMissingUser, wantKind: "missing_user"},
		{name: "store", err: ErrStoreUnavailable, wantKind: "store_unavailable"},
		{name: "unknown", err: errors.New("boom"), wantKind: "store_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.wantKind {
				t.Errorf("ErrorKind() = %v, want %v", got, tt.wantKind)
			}
			if ErrorMessage(tt.err) == "" {
				t.Error("ErrorMessage() should never be empty")
			}
		})
	}

	if ErrorKind(nil) != "success" {
		t.Errorf("ErrorKind(nil) = %v, want success", ErrorKind(nil))
	}
	if ErrorMessage(errors.New("pq: connection refused")) != ErrorMessage(ErrStoreUnavailable) {
		t.Error("unknown errors should render the generic store message")
	}
}
