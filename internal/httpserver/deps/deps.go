package deps

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/shorty/internal/identity"
	"github.com/MrSnakeDoc/shorty/internal/index"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/metrics"
	"github.com/MrSnakeDoc/shorty/internal/resolver"
	"github.com/MrSnakeDoc/shorty/internal/shortener"
	sqlstore "github.com/MrSnakeDoc/shorty/internal/store/sql"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	BaseURL       string               // public origin for short URLs, no trailing slash
	AllowedHosts  []string             // Host headers allowed to access the server
	AllowedCIDRS  []string             // IPs allowed to access the ops endpoints
	TrustProxy    bool                 // true if running behind a trusted reverse proxy
	CORSOrigins   []string             // origins allowed to call /api (empty = CORS off)
	DB            *gorm.DB             // SQL connection, pinged by readyz
	RedisClient   *redis.Client        // Redis client connection (nil when the cache is disabled)
	Links         *sqlstore.LinkStore  // owner-scoped link queries
	Allocator     *shortener.Allocator // short code allocation
	Resolver      *resolver.Resolver   // short code -> link, cache aware
	Reserved      *index.ReservedIndex // reserved short codes
	Identity      *identity.Verifier   // resolves the caller's user id
	Metrics       *metrics.Metrics     // Prometheus collectors (nil disables /metrics)
	ReloadTrigger chan struct{}        // Channel to trigger a manual reserved codes reload
}
