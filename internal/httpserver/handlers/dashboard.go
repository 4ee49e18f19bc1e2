package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/identity"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/shortener"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type dashboardView struct {
	SignedIn   bool
	Success    bool
	Message    string
	URL        string
	CustomCode string
	Links      []linkResponse
}

// Dashboard renders the create form and the caller's links.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, status := dashboardFor(d, r)
		renderDashboard(w, d.Logger, status, view)
	}
}

// DashboardCreate handles the form post and re-renders with the outcome.
func DashboardCreate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := identity.UserFromContext(r.Context())
		if !ok {
			renderDashboard(w, d.Logger, http.StatusUnauthorized, dashboardView{})
			return
		}

		req, err := decodeCreate(w, r)
		if err != nil {
			view, _ := dashboardFor(d, r)
			view.Message = "Malformed request body"
			renderDashboard(w, d.Logger, http.StatusBadRequest, view)
			return
		}

		link, allocErr := d.Allocator.Allocate(r.Context(), shortener.Request{
			URL:        req.URL,
			UserID:     userID,
			CustomCode: req.CustomCode,
		})

		view, status := dashboardFor(d, r)
		if allocErr != nil {
			view.Message = domain.ErrorMessage(allocErr)
			view.URL = req.URL
			view.CustomCode = req.CustomCode
			if status == http.StatusOK {
				status = statusFor(allocErr)
			}
		} else {
			view.Success = true
			view.Message = "Short link created: " + shortURL(d.BaseURL, link.ShortCode)
			status = http.StatusCreated
		}

		renderDashboard(w, d.Logger, status, view)
	}
}

func dashboardFor(d deps.Deps, r *http.Request) (dashboardView, int) {
	userID, ok := identity.UserFromContext(r.Context())
	if !ok {
		return dashboardView{}, http.StatusUnauthorized
	}

	view := dashboardView{SignedIn: true}
	links, err := d.Links.ListByUser(r.Context(), userID)
	if err != nil {
		d.Logger.Error("failed to list links",
			logger.String("user_id", userID),
			logger.Error(err))
		view.Message = "Failed to load your links"
		return view, http.StatusServiceUnavailable
	}

	for _, l := range links {
		view.Links = append(view.Links, linkResponse{
			ID:        l.ID,
			URL:       l.URL,
			ShortCode: l.ShortCode,
			ShortURL:  shortURL(d.BaseURL, l.ShortCode),
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		})
	}
	return view, http.StatusOK
}

func renderDashboard(w http.ResponseWriter, log logger.Logger, status int, view dashboardView) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, view); err != nil {
		log.Error("failed to render dashboard", logger.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
