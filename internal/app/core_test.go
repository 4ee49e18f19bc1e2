package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shorty/internal/config"
	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/shortener"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:         "https://sho.rt",
		DBDriver:        "sqlite",
		DBDSN:           filepath.Join(t.TempDir(), "links.db"),
		DBMaxOpenConns:  1,
		CodeGenerator:   "shortid",
		CodeLength:      8,
		CodeMaxAttempts: 5,
	}
}

func TestNewCore(t *testing.T) {
	cfg := testConfig(t)
	reservedFile := filepath.Join(t.TempDir(), "reserved.yaml")
	require.NoError(t, os.WriteFile(reservedFile, []byte("reserved:\n  - Pricing\n"), 0o644))
	cfg.ReservedFile = reservedFile

	core, err := NewCore(cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close() })

	assert.True(t, core.Reserved.IsReserved("pricing"))
	assert.True(t, core.Reserved.IsReserved("healthz"))
	assert.Equal(t, 5, core.Allocator.MaxAttempts())

	ctx := context.Background()
	link, err := core.Allocator.Allocate(ctx, shortener.Request{URL: "https://go.dev", UserID: "alice"})
	require.NoError(t, err)

	stored, err := core.Links.GetByShortCode(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", stored.URL)

	_, err = core.Allocator.Allocate(ctx, shortener.Request{URL: "https://go.dev", UserID: "alice", CustomCode: "pricing"})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomCode)
}

func TestNewCore_BadReservedFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReservedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewCore(cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		gen     string
		wantErr bool
	}{
		{name: "default", gen: ""},
		{name: "shortid", gen: "shortid"},
		{name: "random", gen: "random"},
		{name: "unknown", gen: "uuid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.CodeGenerator = tt.gen

			gen, err := NewGenerator(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			code, err := gen.NewCode()
			require.NoError(t, err)
			assert.NotEmpty(t, code)
		})
	}

	cfg := testConfig(t)
	cfg.CodeGenerator = "random"
	cfg.CodeLength = 12
	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	code, err := gen.NewCode()
	require.NoError(t, err)
	assert.Len(t, code, 12)
}

func TestCacheOptions(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisAddr = "localhost:6379"
	cfg.RedisDB = 3

	opts := CacheOptions(cfg)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 3, opts.RedisDB)
}
