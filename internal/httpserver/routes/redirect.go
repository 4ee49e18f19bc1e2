package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/handlers"
)

func init() { Register("redirect", registerRedirect) }

// Static routes win over the catch-all in chi, so /healthz and friends never
// reach the redirect handler.
func registerRedirect(r chi.Router, d deps.Deps) {
	r.Get("/{code}", handlers.Redirect(d))
}
