package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/shorty/internal/identity"
	"github.com/MrSnakeDoc/shorty/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"sho.rt", "*.example.com"}, logger.NewNop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"sho.rt", http.StatusOK},
		{"SHO.RT:8080", http.StatusOK},
		{"api.example.com", http.StatusOK},
		{"example.com", http.StatusForbidden},
		{"evil.com", http.StatusForbidden},
		{"sho.rt.evil.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code != tt.want {
				t.Errorf("EnforceHost(%q) = %d, want %d", tt.host, rec.Code, tt.want)
			}
		})
	}
}

func TestEnforceHostPassthrough(t *testing.T) {
	h := EnforceHost(nil, logger.NewNop())(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("empty host list should pass through, got %d", rec.Code)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, true, logger.NewNop())(okHandler)

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       int
	}{
		{name: "allowed remote", remoteAddr: "10.0.0.1:1234", want: http.StatusOK},
		{name: "denied remote", remoteAddr: "8.8.8.8:1234", want: http.StatusForbidden},
		{name: "allowed via proxy", remoteAddr: "127.0.0.1:1", xff: "10.2.3.4", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code != tt.want {
				t.Errorf("AllowOnlyCIDRS() = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://app.example"}, "X-User-ID", logger.NewNop())(okHandler)

	r := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	r.Header.Set("Origin", "https://app.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", "X-User-ID")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/links", nil)
	r.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin should get no CORS header, got %q", got)
	}
}

func TestCrossOrigin(t *testing.T) {
	h := CrossOrigin("https://sho.rt/", []string{"https://app.example"}, logger.NewNop())(okHandler)

	tests := []struct {
		name      string
		method    string
		host      string
		origin    string
		fetchSite string
		want      int
	}{
		{name: "non-browser client", method: http.MethodPost, host: "sho.rt", want: http.StatusOK},
		{name: "same-origin fetch", method: http.MethodPost, host: "sho.rt", origin: "https://sho.rt", fetchSite: "same-origin", want: http.StatusOK},
		{name: "typed in address bar", method: http.MethodPost, host: "sho.rt", fetchSite: "none", want: http.StatusOK},
		{name: "cross-site form", method: http.MethodPost, host: "sho.rt", origin: "https://evil.example", fetchSite: "cross-site", want: http.StatusForbidden},
		{name: "cross-site delete", method: http.MethodDelete, host: "sho.rt", origin: "https://evil.example", fetchSite: "cross-site", want: http.StatusForbidden},
		{name: "old browser cross origin", method: http.MethodPost, host: "sho.rt", origin: "https://evil.example", want: http.StatusForbidden},
		{name: "old browser same host", method: http.MethodPost, host: "sho.rt", origin: "https://sho.rt", want: http.StatusOK},
		{name: "behind proxy base url origin", method: http.MethodPost, host: "10.0.0.5:8080", origin: "https://sho.rt", fetchSite: "cross-site", want: http.StatusOK},
		{name: "trusted cors origin", method: http.MethodPost, host: "sho.rt", origin: "https://app.example", fetchSite: "cross-site", want: http.StatusOK},
		{name: "safe method", method: http.MethodGet, host: "sho.rt", origin: "https://evil.example", fetchSite: "cross-site", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/links", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if tt.fetchSite != "" {
				r.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestOriginOf(t *testing.T) {
	tests := map[string]string{
		"https://sho.rt":        "https://sho.rt",
		"https://sho.rt/app/":   "https://sho.rt",
		"http://localhost:8080": "http://localhost:8080",
		"sho.rt":                "",
		"":                      "",
	}
	for in, want := range tests {
		if got := originOf(in); got != want {
			t.Errorf("originOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	var seen string
	h := Identity(identity.NewVerifier(identity.Config{TrustHeader: true}), logger.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = identity.UserFromContext(r.Context())
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-ID", "alice")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen != "alice" {
		t.Errorf("user = %q, want alice", seen)
	}

	seen = ""
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "" {
		t.Errorf("anonymous request should carry no user, got %q", seen)
	}
}

func TestNoFrames(t *testing.T) {
	rec := httptest.NewRecorder()
	NoFrames(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("X-Frame-Options should be DENY")
	}
}
