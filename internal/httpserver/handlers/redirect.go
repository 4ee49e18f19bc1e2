package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/logger"
)

// Redirect sends the client to the link behind /{code}.
func Redirect(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		link, err := d.Resolver.Resolve(r.Context(), code)
		if err != nil {
			if errors.Is(err, domain.ErrLinkNotFound) {
				http.NotFound(w, r)
				return
			}
			d.Logger.Error("redirect lookup failed",
				logger.String("code", code),
				logger.Error(err))
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Cache-Control", "private, max-age=0")
		http.Redirect(w, r, link.URL, http.StatusFound)
	}
}
