package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	BaseURL string // public origin used to build short URLs (ex: https://sho.rt)

	// Database
	DBDriver       string        // "postgres" | "sqlite"
	DBDSN          string        // driver specific DSN
	DBMaxOpenConns int           // 0 = driver default
	DBMaxIdleConns int           // 0 = driver default
	DBConnMaxLife  time.Duration // 0 = forever

	// Short codes
	CodeGenerator   string        // "shortid" | "random"
	CodeLength      int           // length of random codes (min 8)
	CodeMaxAttempts int           // insert attempts for a generated code (default 5)
	ShortIDWorker   int           // shortid worker slot, 0-31, distinct per replica
	ReservedFile    string        // optional YAML list of extra reserved codes
	ReloadInterval  time.Duration // reserved file reload interval (0 = manual only)

	// Identity
	JWTSecret       string // HS256 key for bearer tokens (empty = tokens disabled)
	TrustUserHeader bool   // trust UserHeader from an authenticating proxy
	UserHeader      string // ex: "X-User-ID"

	// Redis (optional cache, empty addr disables it)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 5s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 10s)
	RedisRetryInterval  time.Duration // Initial wait between retries (grows exponentially)
	CacheTTL            time.Duration // TTL of cached links
	CacheSweepInterval  time.Duration // stale cache sweep interval (0 = startup only)

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // optional, origins allowed to call /api
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SHORTY_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHORTY_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SHORTY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SHORTY_PRETTY_LOG", false),

		BaseURL: strings.TrimRight(requireEnv("SHORTY_BASE_URL"), "/"),

		// Database
		DBDriver:       getenv("SHORTY_DB_DRIVER", "postgres"),
		DBDSN:          requireEnv("SHORTY_DB_DSN"),
		DBMaxOpenConns: getenvInt("SHORTY_DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getenvInt("SHORTY_DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:  mustDuration("SHORTY_DB_CONN_MAX_LIFETIME", 30*time.Minute),

		// Short codes
		CodeGenerator:   getenv("SHORTY_CODE_GENERATOR", "shortid"),
		CodeLength:      getenvInt("SHORTY_CODE_LENGTH", 8),
		CodeMaxAttempts: getenvInt("SHORTY_CODE_MAX_ATTEMPTS", 5),
		ShortIDWorker:   getenvInt("SHORTY_SHORTID_WORKER", 0),
		ReservedFile:    getenv("SHORTY_RESERVED_FILE", ""),
		ReloadInterval:  mustDuration("SHORTY_RELOAD_INTERVAL", time.Hour),

		// Identity
		JWTSecret:       getenv("SHORTY_JWT_SECRET", ""),
		TrustUserHeader: mustBool("SHORTY_TRUST_USER_HEADER", false),
		UserHeader:      getenv("SHORTY_USER_HEADER", "X-User-ID"),

		// Redis settings
		RedisAddr:           getenv("SHORTY_REDIS_ADDR", ""),
		RedisUser:           getenv("SHORTY_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SHORTY_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SHORTY_REDIS_DB", 0),
		RedisDT:             mustDuration("SHORTY_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("SHORTY_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("SHORTY_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("SHORTY_REDIS_MAX_WAIT", 5*time.Second),
		RedisPingTimeout:    mustDuration("SHORTY_REDIS_PING_TIMEOUT", 2*time.Second),
		RedisPoolSize:       getenvInt("SHORTY_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("SHORTY_REDIS_CONNECT_TIMEOUT", 10*time.Second),
		RedisRetryInterval:  mustDuration("SHORTY_REDIS_RETRY_INTERVAL", 500*time.Millisecond),
		CacheTTL:            mustDuration("SHORTY_CACHE_TTL", 24*time.Hour),
		CacheSweepInterval:  mustDuration("SHORTY_CACHE_SWEEP_INTERVAL", time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SHORTY_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SHORTY_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SHORTY_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("SHORTY_CORS_ORIGINS", "")),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.DBDSN = "***REDACTED***"
		cfgCopy.JWTSecret = redact(cfg.JWTSecret)
		cfgCopy.RedisPassword = redact(cfg.RedisPassword)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("SHORTY_DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}

	switch c.CodeGenerator {
	case "shortid", "random":
	default:
		return fmt.Errorf("SHORTY_CODE_GENERATOR must be shortid or random, got %q", c.CodeGenerator)
	}

	if c.CodeMaxAttempts < 1 {
		return fmt.Errorf("SHORTY_CODE_MAX_ATTEMPTS must be >= 1, got %d", c.CodeMaxAttempts)
	}
	if c.ShortIDWorker < 0 || c.ShortIDWorker > 31 {
		return fmt.Errorf("SHORTY_SHORTID_WORKER must be in [0,31], got %d", c.ShortIDWorker)
	}
	if c.JWTSecret == "" && !c.TrustUserHeader {
		return fmt.Errorf("one of SHORTY_JWT_SECRET or SHORTY_TRUST_USER_HEADER=true is required")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***REDACTED***"
}
