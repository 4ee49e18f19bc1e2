package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/mw"
)

func init() { Register("dashboard", registerDashboard, mw.NoFrames) }

func registerDashboard(r chi.Router, d deps.Deps) {
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(host).Get("/", handlers.Dashboard(d))
	r.With(host, mw.CrossOrigin(d.BaseURL, d.CORSOrigins, d.Logger)).Post("/links", handlers.DashboardCreate(d))
}
