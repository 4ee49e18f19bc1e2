package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shorty/internal/domain"
)

// DefaultLinkTTL is the default TTL for cached links (24 hours)
const DefaultLinkTTL = 24 * time.Hour

// Store is a read-through cache of links keyed by short code.
// The SQL store stays the source of truth.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis link cache
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// cachedLink is the JSON shape stored under LinkKey.
type cachedLink struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	ShortCode string    `json:"short_code"`
	CreatedAt time.Time `json:"created_at"`
}

// CacheLink stores link under its short code
func (s *Store) CacheLink(ctx context.Context, link *domain.Link) error {
	data, err := json.Marshal(cachedLink{
		ID:        link.ID,
		UserID:    link.UserID,
		URL:       link.URL,
		ShortCode: link.ShortCode,
		CreatedAt: link.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	if err := s.client.Set(ctx, LinkKey(link.ShortCode), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache link: %w", err)
	}
	return nil
}

// GetCachedLink returns the cached link, or nil on a cache miss
func (s *Store) GetCachedLink(ctx context.Context, code string) (*domain.Link, error) {
	data, err := s.client.Get(ctx, LinkKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached link: %w", err)
	}

	var cl cachedLink
	if err := json.Unmarshal(data, &cl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached link: %w", err)
	}

	return &domain.Link{
		ID:        cl.ID,
		UserID:    cl.UserID,
		URL:       cl.URL,
		ShortCode: cl.ShortCode,
		CreatedAt: cl.CreatedAt,
	}, nil
}

// InvalidateLink removes a cached link
func (s *Store) InvalidateLink(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, LinkKey(code)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate link: %w", err)
	}
	return nil
}

// FlushCache removes all cached links and returns how many were dropped
func (s *Store) FlushCache(ctx context.Context) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixLink+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete cache key: %w", err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to flush cache: %w", err)
	}
	return removed, nil
}

// CachedCodes lists the short codes currently held in the cache
func (s *Store) CachedCodes(ctx context.Context) ([]string, error) {
	var codes []string
	iter := s.client.Scan(ctx, 0, KeyPrefixLink+"*", 0).Iterator()
	for iter.Next(ctx) {
		code, err := ExtractCode(iter.Val())
		if err != nil {
			continue
		}
		codes = append(codes, code)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan cached links: %w", err)
	}
	return codes, nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
