package mw

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/shorty/internal/logger"
)

// CrossOrigin rejects state-changing browser requests sent from another site.
// Same-origin requests, requests from the trusted origins and non-browser
// clients (no Origin and no Sec-Fetch-Site header) pass. Safe methods are never
// checked. Trusted origins are the public origin of baseURL plus corsOrigins.
func CrossOrigin(baseURL string, corsOrigins []string, log logger.Logger) func(http.Handler) http.Handler {
	cop := http.NewCrossOriginProtection()

	trusted := append([]string{originOf(baseURL)}, corsOrigins...)
	for _, o := range trusted {
		if o == "" {
			continue
		}
		if err := cop.AddTrustedOrigin(o); err != nil {
			log.Warn("ignoring invalid trusted origin",
				logger.String("origin", o),
				logger.Error(err))
		}
	}

	cop.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Warn("cross-origin request blocked",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("origin", r.Header.Get("Origin")),
			logger.String("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "Cross-site requests are not allowed",
		})
	}))

	return cop.Handler
}

// originOf reduces a base URL such as https://sho.rt/app to https://sho.rt.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
