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
	RequestTimeout  time.Duration // per-request timeout enforced by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Link previews
	SiteOrigin        string // public origin of the storefront (ex: https://shop.example.com)
	SiteName          string // display name used in preview tags
	AssetOrigin       string // origin prepended to relative image paths (defaults to SiteOrigin)
	DefaultImageURL   string // fallback image when a product has none
	CrawlerTokensFile string // optional yaml file overriding the built-in crawler tokens

	// Postgres
	PostgresDSN            string
	PostgresMaxConns       int32
	PostgresMinConns       int32
	PostgresConnectTimeout time.Duration
	PostgresRetryInterval  time.Duration
	PostgresMaxWait        time.Duration
	PostgresPingTimeout    time.Duration

	// Redis (optional, empty addr disables visitor tracking)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration

	CORSOrigins []string // allowed browser origins, empty = CORS disabled
	TrustProxy  bool     // true => trust X-Forwarded-For headers

	// Rate limiting on mutating endpoints
	RateLimitRPS   float64
	RateLimitBurst int

	// Keepalive self-ping (empty URL disables it)
	KeepAliveURL      string
	KeepAliveInterval time.Duration
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CATALOG_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CATALOG_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("CATALOG_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("CATALOG_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CATALOG_PRETTY_LOG", false),

		// Link previews
		SiteOrigin:        requireEnv("CATALOG_SITE_ORIGIN"),
		SiteName:          getenv("CATALOG_SITE_NAME", "Catalog"),
		AssetOrigin:       getenv("CATALOG_ASSET_ORIGIN", ""),
		DefaultImageURL:   getenv("CATALOG_DEFAULT_IMAGE_URL", ""),
		CrawlerTokensFile: getenv("CATALOG_CRAWLER_TOKENS_FILE", ""),

		// Postgres settings
		PostgresDSN:            requireEnv("CATALOG_POSTGRES_DSN"),
		PostgresMaxConns:       int32(getenvInt("CATALOG_POSTGRES_MAX_CONNS", 10)),
		PostgresMinConns:       int32(getenvInt("CATALOG_POSTGRES_MIN_CONNS", 0)),
		PostgresConnectTimeout: mustDuration("CATALOG_POSTGRES_CONNECT_TIMEOUT", 30*time.Second),
		PostgresRetryInterval:  mustDuration("CATALOG_POSTGRES_RETRY_INTERVAL", 2*time.Second),
		PostgresMaxWait:        mustDuration("CATALOG_POSTGRES_MAX_WAIT", 10*time.Second),
		PostgresPingTimeout:    mustDuration("CATALOG_POSTGRES_PING_TIMEOUT", 5*time.Second),

		// Redis settings
		RedisAddr:           getenv("CATALOG_REDIS_ADDR", ""),
		RedisUser:           getenv("CATALOG_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("CATALOG_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("CATALOG_REDIS_DB", 0),
		RedisDT:             mustDuration("CATALOG_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("CATALOG_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("CATALOG_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("CATALOG_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("CATALOG_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("CATALOG_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("CATALOG_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("CATALOG_REDIS_PING_TIMEOUT", 5*time.Second),

		// Access
		CORSOrigins: splitAndTrim(getenv("CATALOG_CORS_ORIGINS", "")),
		TrustProxy:  mustBool("CATALOG_TRUST_PROXY", true),

		// Rate limiting
		RateLimitRPS:   getenvFloat("CATALOG_RATE_LIMIT_RPS", 5),
		RateLimitBurst: getenvInt("CATALOG_RATE_LIMIT_BURST", 10),

		// Keepalive
		KeepAliveURL:      getenv("CATALOG_KEEPALIVE_URL", ""),
		KeepAliveInterval: mustDuration("CATALOG_KEEPALIVE_INTERVAL", 10*time.Minute),
	}

	if cfg.AssetOrigin == "" {
		cfg.AssetOrigin = cfg.SiteOrigin
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.PostgresDSN = "***REDACTED***"
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
