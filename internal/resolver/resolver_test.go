package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	redisstore "github.com/MrSnakeDoc/shorty/internal/store/redis"
	sqlstore "github.com/MrSnakeDoc/shorty/internal/store/sql"
)

type fixture struct {
	links *sqlstore.LinkStore
	cache *redisstore.Store
	mr    *miniredis.Miniredis
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := sqlstore.Open(sqlstore.Options{
		Driver:       sqlstore.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "resolver.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(db))
	t.Cleanup(func() { _ = sqlstore.Close(db) })

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return fixture{
		links: sqlstore.NewLinkStore(db),
		cache: redisstore.NewStore(client, time.Hour),
		mr:    mr,
	}
}

func TestResolve_FillsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.links.Insert(ctx, &domain.Link{UserID: "u1", URL: "https://example.com", ShortCode: "abc"}))

	r := New(f.links, f.cache, nil, logger.NewNop())

	link, err := r.Resolve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", link.URL)
	assert.True(t, f.mr.Exists(redisstore.LinkKey("abc")))

	// served from cache even once the row is gone
	_, err = f.links.DeleteByID(ctx, link.ID, "u1")
	require.NoError(t, err)
	cached, err := r.Resolve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cached.URL)

	r.Forget(ctx, "abc")
	_, err = r.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestResolve_NotFound(t *testing.T) {
	f := newFixture(t)
	r := New(f.links, f.cache, nil, logger.NewNop())

	tests := []string{"missing", "", "this-code-is-way-too-long-for-a-link"}
	for _, code := range tests {
		_, err := r.Resolve(context.Background(), code)
		assert.ErrorIs(t, err, domain.ErrLinkNotFound, code)
	}
}

func TestResolve_CaseSensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.links.Insert(ctx, &domain.Link{UserID: "u1", URL: "https://upper.example", ShortCode: "AbC"}))

	r := New(f.links, nil, nil, logger.NewNop())

	_, err := r.Resolve(ctx, "AbC")
	require.NoError(t, err)
	_, err = r.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestResolve_CacheDownFallsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.links.Insert(ctx, &domain.Link{UserID: "u1", URL: "https://example.com", ShortCode: "abc"}))
	f.mr.Close()

	r := New(f.links, f.cache, nil, logger.NewNop())

	link, err := r.Resolve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", link.URL)

	assert.NotPanics(t, func() { r.Forget(ctx, "abc") })
}

type brokenReader struct{}

func (brokenReader) GetByShortCode(context.Context, string) (*domain.Link, error) {
	return nil, errors.New("database is locked")
}

func TestResolve_StoreError(t *testing.T) {
	r := New(brokenReader{}, nil, nil, logger.NewNop())

	_, err := r.Resolve(context.Background(), "abc")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrLinkNotFound))
}
