package mw

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/shorty/internal/identity"
	"github.com/MrSnakeDoc/shorty/internal/logger"
)

// Identity resolves the caller and stores the user id in the request context.
// Anonymous requests pass through untouched; handlers decide whether that is a 401.
func Identity(v *identity.Verifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := v.UserFromRequest(r)
			if err != nil {
				if !errors.Is(err, identity.ErrNoCredentials) {
					log.Debug("rejected credentials",
						logger.String("path", r.URL.Path),
						logger.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), userID)))
		})
	}
}
