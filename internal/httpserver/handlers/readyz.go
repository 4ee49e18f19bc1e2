package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	sqlstore "github.com/MrSnakeDoc/shorty/internal/store/sql"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports ready once the link store answers a ping. The cache is
// optional and does not gate readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := sqlstore.Ping(ctx, d.DB); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, d.Logger, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Error: "database unavailable",
			})
			return
		}

		writeJSON(w, d.Logger, http.StatusOK, readyzResponse{Ready: true})
	}
}
