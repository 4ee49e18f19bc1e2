package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/metrics"
)

// LinkReader is the source of truth for short code lookups.
type LinkReader interface {
	GetByShortCode(ctx context.Context, code string) (*domain.Link, error)
}

// Cache is an optional read-through cache in front of LinkReader.
// GetCachedLink returns (nil, nil) on a miss.
type Cache interface {
	CacheLink(ctx context.Context, link *domain.Link) error
	GetCachedLink(ctx context.Context, code string) (*domain.Link, error)
	InvalidateLink(ctx context.Context, code string) error
}

// Resolver turns short codes into links, consulting the cache first.
// Cache failures are logged and never fail a lookup.
type Resolver struct {
	links   LinkReader
	cache   Cache
	metrics *metrics.Metrics
	logger  logger.Logger
}

// New creates a new resolver. cache may be nil.
func New(links LinkReader, cache Cache, m *metrics.Metrics, log logger.Logger) *Resolver {
	return &Resolver{
		links:   links,
		cache:   cache,
		metrics: m,
		logger:  log.Named("resolver"),
	}
}

// Resolve returns the link for code, or domain.ErrLinkNotFound.
func (r *Resolver) Resolve(ctx context.Context, code string) (*domain.Link, error) {
	if code == "" || len(code) > domain.MaxShortCodeLength {
		r.metrics.Redirect("miss")
		return nil, domain.ErrLinkNotFound
	}

	if r.cache != nil {
		link, err := r.cache.GetCachedLink(ctx, code)
		switch {
		case err != nil:
			r.logger.Warn("link cache read failed",
				logger.String("code", code),
				logger.Error(err))
		case link != nil:
			r.metrics.Redirect("hit")
			return link, nil
		}
	}

	link, err := r.links.GetByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			r.metrics.Redirect("miss")
			return nil, domain.ErrLinkNotFound
		}
		r.metrics.Redirect("error")
		return nil, fmt.Errorf("failed to resolve %q: %w", code, err)
	}

	if r.cache != nil {
		if err := r.cache.CacheLink(ctx, link); err != nil {
			r.logger.Warn("link cache write failed",
				logger.String("code", code),
				logger.Error(err))
		}
	}

	r.metrics.Redirect("hit")
	return link, nil
}

// Forget drops code from the cache after a delete.
func (r *Resolver) Forget(ctx context.Context, code string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateLink(ctx, code); err != nil {
		r.logger.Warn("link cache invalidation failed",
			logger.String("code", code),
			logger.Error(err))
	}
}
