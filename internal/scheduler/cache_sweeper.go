package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/logger"
)

// SweepCache is the part of the redirect cache the sweeper needs.
type SweepCache interface {
	CachedCodes(ctx context.Context) ([]string, error)
	GetCachedLink(ctx context.Context, code string) (*domain.Link, error)
	InvalidateLink(ctx context.Context, code string) error
}

// LinkLookup reads the source of truth.
type LinkLookup interface {
	GetByShortCode(ctx context.Context, code string) (*domain.Link, error)
}

// CacheSweeper drops cached redirects that no longer match the link store.
// They appear when a delete could not reach Redis and would otherwise live
// until their TTL.
type CacheSweeper struct {
	cache    SweepCache
	links    LinkLookup
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCacheSweeper creates a new cache sweeper
func NewCacheSweeper(
	cache SweepCache,
	links LinkLookup,
	log logger.Logger,
	interval time.Duration,
) *CacheSweeper {
	return &CacheSweeper{
		cache:    cache,
		links:    links,
		logger:   log.Named("cache_sweeper"),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start sweeps once, then on every tick. A zero interval disables the ticker.
func (cs *CacheSweeper) Start(ctx context.Context) error {
	if _, err := cs.Sweep(ctx); err != nil {
		cs.logger.Warn("initial cache sweep failed",
			logger.Error(err))
	}

	if cs.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(cs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := cs.Sweep(ctx); err != nil {
					cs.logger.Error("cache sweep failed",
						logger.Error(err))
				}
			case <-cs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper
func (cs *CacheSweeper) Stop() {
	close(cs.stopCh)
}

// Sweep invalidates every cached link whose row is gone or now points
// somewhere else, and returns how many entries it dropped. Entries it cannot
// check because the link store is failing are left alone.
func (cs *CacheSweeper) Sweep(ctx context.Context) (int, error) {
	codes, err := cs.cache.CachedCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cached links: %w", err)
	}

	dropped := 0
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return dropped, err
		}

		stale, err := cs.isStale(ctx, code)
		if err != nil {
			cs.logger.Warn("skipping cached link",
				logger.String("code", code),
				logger.Error(err))
			continue
		}
		if !stale {
			continue
		}

		if err := cs.cache.InvalidateLink(ctx, code); err != nil {
			cs.logger.Warn("failed to drop stale cached link",
				logger.String("code", code),
				logger.Error(err))
			continue
		}
		dropped++
	}

	if dropped > 0 {
		cs.logger.Info("cache sweep completed",
			logger.Int("scanned", len(codes)),
			logger.Int("dropped", dropped))
	} else {
		cs.logger.Debug("no stale cached links")
	}

	return dropped, nil
}

func (cs *CacheSweeper) isStale(ctx context.Context, code string) (bool, error) {
	cached, err := cs.cache.GetCachedLink(ctx, code)
	if err != nil {
		// an unreadable entry is as good as stale
		return true, nil
	}
	if cached == nil {
		// expired between the scan and the read
		return false, nil
	}

	link, err := cs.links.GetByShortCode(ctx, code)
	if errors.Is(err, domain.ErrLinkNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return link.ID != cached.ID || link.URL != cached.URL, nil
}
