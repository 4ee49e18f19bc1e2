package mw

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/MrSnakeDoc/shorty/internal/logger"
)

// CORS allows browser calls from the given origins. If the list is empty, it
// does NOT add any header (passthrough).
func CORS(origins []string, userHeader string, log logger.Logger) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		log.Debug("CORS: no origins configured, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debugf("CORS: initialized with origins=%v", origins)

	allowed := []string{"Authorization", "Content-Type"}
	if userHeader != "" {
		allowed = append(allowed, userHeader)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   allowed,
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
