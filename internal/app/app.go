package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shorty/internal/config"
	"github.com/MrSnakeDoc/shorty/internal/httpserver"
	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shorty/internal/identity"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/redis"
	"github.com/MrSnakeDoc/shorty/internal/resolver"
	"github.com/MrSnakeDoc/shorty/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/shorty/internal/store/redis"
	"github.com/MrSnakeDoc/shorty/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	core        *Core
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.ReservedReloader
	sweeper     *scheduler.CacheSweeper
}

func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	core, err := NewCore(cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize link store: %w", err)
	}
	loggerClient.Info("link store ready",
		logger.String("driver", cfg.DBDriver),
		logger.Int("reserved_codes", core.Reserved.Count()))

	// Redis is an optional redirect cache - run without it if unavailable
	redisClient := connectCache(cfg, loggerClient)

	var (
		cache   resolver.Cache
		sweeper *scheduler.CacheSweeper
	)
	if redisClient != nil {
		store := redisstore.NewStore(redisClient, cfg.CacheTTL)
		cache = store
		sweeper = scheduler.NewCacheSweeper(store, core.Links, loggerClient, cfg.CacheSweepInterval)
	}
	loggerClient.Info("redirect cache",
		logger.Bool("enabled", redisClient != nil),
		logger.Duration("ttl", cfg.CacheTTL))

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewReservedReloader(
		cfg.ReservedFile,
		core.Reserved,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		BaseURL:      cfg.BaseURL,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		CORSOrigins:  cfg.CORSOrigins,
		DB:           core.DB,
		RedisClient:  redisClient,
		Links:        core.Links,
		Allocator:    core.Allocator,
		Resolver:     resolver.New(core.Links, cache, core.Metrics, loggerClient),
		Reserved:     core.Reserved,
		Identity: identity.NewVerifier(identity.Config{
			Secret:      cfg.JWTSecret,
			TrustHeader: cfg.TrustUserHeader,
			Header:      cfg.UserHeader,
		}),
		Metrics:       core.Metrics,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		core:        core,
		server:      httpserver.New(cfg, d),
		redisClient: redisClient,
		reloader:    reloader,
		sweeper:     sweeper,
	}, nil
}

func connectCache(cfg *config.Config, log logger.Logger) *goredis.Client {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, redirect cache disabled")
		return nil
	}

	client, err := redis.New(context.Background(), CacheOptions(cfg), log)
	if err != nil {
		log.Warn("redis unavailable, redirect cache disabled", logger.Error(err))
		return nil
	}
	return client
}

// CacheOptions maps the Redis settings onto connector options.
func CacheOptions(cfg *config.Config) redis.ConnectOptions {
	return redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting shorty %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reserved codes reloader: %w", err)
	}
	a.logger.Info("reserved codes reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.sweeper != nil {
		if err := a.sweeper.Start(ctx); err != nil {
			return fmt.Errorf("failed to start cache sweeper: %w", err)
		}
		a.logger.Info("cache sweeper started",
			logger.Duration("interval", a.cfg.CacheSweepInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.close()
		return err
	}

	a.reloader.Stop()
	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.close()
	a.logger.Info("✅ shorty stopped cleanly")
	return nil
}

func (a *App) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err := a.core.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	} else {
		a.logger.Info("✅ Database closed cleanly")
	}
}
