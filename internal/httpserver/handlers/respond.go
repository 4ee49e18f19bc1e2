package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/logger"
)

// createResponse is the envelope of the create endpoints.
type createResponse struct {
	Success   bool   `json:"success"`
	ShortCode string `json:"shortCode,omitempty"`
	ShortURL  string `json:"shortUrl,omitempty"`
	Error     string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

// statusFor maps an allocation error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusCreated
	case errors.Is(err, domain.ErrMissingUser):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidURL), errors.Is(err, domain.ErrInvalidCustomCode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCodeAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

func shortURL(base, code string) string {
	return base + "/" + code
}
