// Package config loads authorize-server settings from command-line flags,
// with environment variables supplying the defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-training/oauth-authorize/pkg/logger"
	"github.com/go-training/oauth-authorize/pkg/store"
)

// Environment variables read for flag defaults.
const (
	EnvAddr            = "AUTHZ_ADDR"
	EnvIssuer          = "AUTHZ_ISSUER"
	EnvLogLevel        = "AUTHZ_LOG_LEVEL"
	EnvAdminToken      = "AUTHZ_ADMIN_TOKEN"
	EnvStore           = "AUTHZ_STORE"
	EnvRedisAddr       = "AUTHZ_REDIS_ADDR"
	EnvRedisPassword   = "AUTHZ_REDIS_PASSWORD"
	EnvRedisDB         = "AUTHZ_REDIS_DB"
	EnvRedisKeyPrefix  = "AUTHZ_REDIS_KEY_PREFIX"
	EnvSeedFile        = "AUTHZ_SEED_FILE"
	EnvShutdownTimeout = "AUTHZ_SHUTDOWN_TIMEOUT"
)

var (
	ErrEmptyAddr       = errors.New("listen address cannot be empty")
	ErrInvalidStore    = errors.New("store must be memory or redis")
	ErrEmptyRedisAddr  = errors.New("redis address is required when store=redis")
	ErrInvalidLogLevel = errors.New("log level must be DEBUG, INFO, WARN or ERROR")
	ErrInvalidIssuer   = errors.New("issuer must be an absolute URL")
	ErrInvalidRedisDB  = errors.New("redis database must not be negative")
	ErrShutdownTimeout = errors.New("shutdown timeout must be positive")
)

// Config holds the authorize-server settings.
type Config struct {
	Addr       string
	Issuer     string
	LogLevel   string
	// AdminToken guards the /admin API as a bearer token. Empty leaves
	// the admin API open.
	AdminToken string

	Store          string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// SeedFile is a YAML file of clients and scopes registered at startup.
	// When empty, the development seed is applied to the memory store.
	SeedFile string

	ShutdownTimeout time.Duration
}

// Load parses args (without the program name). getenv supplies flag
// defaults; pass os.Getenv in production.
func Load(args []string, getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	redisDB, err := strconv.Atoi(env(EnvRedisDB, "0"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvRedisDB, err)
	}
	shutdown, err := time.ParseDuration(env(EnvShutdownTimeout, "30s"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvShutdownTimeout, err)
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("authorize-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", env(EnvAddr, ":8095"), "address to listen on")
	fs.StringVar(&cfg.Issuer, "issuer", env(EnvIssuer, ""), "Issuer URL published in server metadata. Defaults to http://<addr>")
	fs.StringVar(&cfg.LogLevel, "log-level", env(EnvLogLevel, ""), "Log level (DEBUG, INFO, WARN, ERROR). Defaults to DEBUG in development, INFO in production")
	fs.StringVar(&cfg.AdminToken, "admin-token", env(EnvAdminToken, ""), "Bearer token required by the /admin API")
	fs.StringVar(&cfg.Store, "store", env(EnvStore, "memory"), "Store type: memory or redis")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", env(EnvRedisAddr, "localhost:6379"), "Redis address (only used when store=redis)")
	fs.StringVar(&cfg.RedisPassword, "redis-password", env(EnvRedisPassword, ""), "Redis password (only used when store=redis)")
	fs.IntVar(&cfg.RedisDB, "redis-db", redisDB, "Redis database (only used when store=redis)")
	fs.StringVar(&cfg.RedisKeyPrefix, "redis-key-prefix", env(EnvRedisKeyPrefix, "authz:"), "Prefix for every Redis key (only used when store=redis)")
	fs.StringVar(&cfg.SeedFile, "seed", env(EnvSeedFile, ""), "YAML file with clients and scopes to register at startup")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", shutdown, "Graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer(cfg.Addr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return ErrEmptyAddr
	}
	if !store.StoreType(strings.ToLower(c.Store)).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStore, c.Store)
	}
	if c.StoreType() == store.StoreTypeRedis && c.RedisAddr == "" {
		return ErrEmptyRedisAddr
	}
	if c.RedisDB < 0 {
		return ErrInvalidRedisDB
	}
	if c.LogLevel != "" {
		if _, ok := logger.ParseLevel(c.LogLevel); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
		}
	}
	if u, err := url.Parse(c.Issuer); err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidIssuer, c.Issuer)
	}
	if c.ShutdownTimeout <= 0 {
		return ErrShutdownTimeout
	}
	return nil
}

// StoreType returns the configured backend.
func (c *Config) StoreType() store.StoreType {
	return store.ParseStoreType(c.Store)
}

// StoreConfig returns the store factory configuration.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Type: c.StoreType(),
		Redis: store.RedisOptions{
			Addr:      c.RedisAddr,
			Password:  c.RedisPassword,
			DB:        c.RedisDB,
			KeyPrefix: c.RedisKeyPrefix,
		},
	}
}

func defaultIssuer(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host
}
