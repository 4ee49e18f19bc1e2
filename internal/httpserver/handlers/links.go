package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/identity"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/shortener"
)

const maxBodyBytes = 64 << 10

type createRequest struct {
	URL        string `json:"url"`
	CustomCode string `json:"customCode"`
}

type linkResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	ShortCode string    `json:"shortCode"`
	ShortURL  string    `json:"shortUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type listResponse struct {
	Links []linkResponse `json:"links"`
}

// CreateLink allocates a short code for the caller. Accepts JSON or form bodies.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := identity.UserFromContext(r.Context())
		if !ok {
			writeJSON(w, d.Logger, http.StatusUnauthorized, createResponse{
				Error: domain.ErrorMessage(domain.ErrMissingUser),
			})
			return
		}

		req, err := decodeCreate(w, r)
		if err != nil {
			writeJSON(w, d.Logger, http.StatusBadRequest, createResponse{
				Error: "Malformed request body",
			})
			return
		}

		link, err := d.Allocator.Allocate(r.Context(), shortener.Request{
			URL:        req.URL,
			UserID:     userID,
			CustomCode: req.CustomCode,
		})
		if err != nil {
			writeJSON(w, d.Logger, statusFor(err), createResponse{
				Error: domain.ErrorMessage(err),
			})
			return
		}

		writeJSON(w, d.Logger, http.StatusCreated, createResponse{
			Success:   true,
			ShortCode: link.ShortCode,
			ShortURL:  shortURL(d.BaseURL, link.ShortCode),
		})
	}
}

func decodeCreate(w http.ResponseWriter, r *http.Request) (createRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.URL = r.PostForm.Get("url")
	req.CustomCode = r.PostForm.Get("customCode")
	return req, nil
}

// ListLinks returns the caller's links, newest first.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := identity.UserFromContext(r.Context())
		if !ok {
			writeJSON(w, d.Logger, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		links, err := d.Links.ListByUser(r.Context(), userID)
		if err != nil {
			d.Logger.Error("failed to list links",
				logger.String("user_id", userID),
				logger.Error(err))
			writeJSON(w, d.Logger, http.StatusServiceUnavailable, map[string]string{"error": "failed to list links"})
			return
		}

		resp := listResponse{Links: make([]linkResponse, 0, len(links))}
		for _, l := range links {
			resp.Links = append(resp.Links, linkResponse{
				ID:        l.ID,
				URL:       l.URL,
				ShortCode: l.ShortCode,
				ShortURL:  shortURL(d.BaseURL, l.ShortCode),
				CreatedAt: l.CreatedAt,
				UpdatedAt: l.UpdatedAt,
			})
		}

		writeJSON(w, d.Logger, http.StatusOK, resp)
	}
}

// DeleteLink removes one of the caller's links and drops it from the cache.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := identity.UserFromContext(r.Context())
		if !ok {
			writeJSON(w, d.Logger, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		deleted, err := d.Links.DeleteByID(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			if errors.Is(err, domain.ErrLinkNotFound) {
				writeJSON(w, d.Logger, http.StatusNotFound, map[string]string{"error": "link not found"})
				return
			}
			d.Logger.Error("failed to delete link",
				logger.String("user_id", userID),
				logger.Error(err))
			writeJSON(w, d.Logger, http.StatusServiceUnavailable, map[string]string{"error": "failed to delete link"})
			return
		}

		d.Resolver.Forget(r.Context(), deleted.ShortCode)
		d.Logger.Info("link deleted",
			logger.String("code", deleted.ShortCode),
			logger.String("user_id", userID))

		w.WriteHeader(http.StatusNoContent)
	}
}
