package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName carries the access token for browser sessions.
const CookieName = "shorty_token"

var (
	ErrNoCredentials = errors.New("no credentials")
	ErrInvalidToken  = errors.New("invalid access token")
)

// Claims are the access token claims shorty accepts.
type Claims struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// Config controls where a request's user comes from.
type Config struct {
	Secret      string // HS256 key; empty disables token auth
	TrustHeader bool   // accept the user id from Header as-is
	Header      string // header set by an authenticating proxy (ex: X-User-ID)
}

// Verifier extracts the authenticated user from requests.
type Verifier struct {
	cfg Config
}

// NewVerifier creates a new identity verifier
func NewVerifier(cfg Config) *Verifier {
	if cfg.Header == "" {
		cfg.Header = "X-User-ID"
	}
	return &Verifier{cfg: cfg}
}

// UserFromRequest returns the user id for r. Order: bearer token, cookie,
// then the trusted proxy header when enabled.
func (v *Verifier) UserFromRequest(r *http.Request) (string, error) {
	if v.cfg.Secret != "" {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(CookieName); err == nil {
				token = c.Value
			}
		}
		if token != "" {
			claims, err := ParseAccessToken(token, v.cfg.Secret)
			if err != nil {
				return "", err
			}
			return claims.UserID, nil
		}
	}

	if v.cfg.TrustHeader {
		if id := strings.TrimSpace(r.Header.Get(v.cfg.Header)); id != "" {
			return id, nil
		}
	}

	return "", ErrNoCredentials
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// GenerateAccessToken signs an access token for userID valid for ttl.
func GenerateAccessToken(userID, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates tokenStr and returns its claims.
func ParseAccessToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != "access" || strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type ctxKey struct{}

// WithUser stores the authenticated user id on ctx.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserFromContext returns the user id stored by WithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
