package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/mw"
)

func init() { Register("links", registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/links", func(api chi.Router) {
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		api.Use(mw.CrossOrigin(d.BaseURL, d.CORSOrigins, d.Logger))
		api.Post("/", handlers.CreateLink(d))
		api.Get("/", handlers.ListLinks(d))
		api.Delete("/{id}", handlers.DeleteLink(d))
	})
}
