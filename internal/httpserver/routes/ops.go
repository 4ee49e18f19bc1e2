package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/mw"
)

func init() { Register("ops", registerOps) }

func registerOps(r chi.Router, d deps.Deps) {
	ops := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

	ops.Get("/healthz", handlers.Healthz(d))
	ops.Get("/readyz", handlers.Readyz(d))
	ops.Get("/infra", handlers.Infra(d))
	ops.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.CrossOrigin(d.BaseURL, nil, d.Logger),
	).Post("/reload", handlers.Reload(d))

	if d.Metrics != nil {
		ops.Get("/metrics", handlers.Metrics(d))
	}
}
