// Package config loads application configuration from environment
// variables into typed structs.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable; required fields without a value fail Load.
type Config struct {
	Env  string `env:"APP_ENV, default=dev"`
	Port string `env:"APP_PORT, default=8080"`

	DB DBConfig `env:", prefix=DB_"`

	JWTSecret      string `env:"JWT_SECRET, required"`
	AccessTTLMin   int    `env:"ACCESS_TOKEN_TTL_MIN, default=15"`
	RefreshTTLDays int    `env:"REFRESH_TOKEN_TTL_DAYS, default=7"`
	BcryptCost     int    `env:"BCRYPT_COST, default=10"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	AMQPURL string `env:"AMQP_URL"`

	RateLimit RateLimitConfig `env:", prefix=RATE_LIMIT_"`
	Cache     CacheConfig     `env:", prefix=CACHE_"`
}

// DBConfig holds MySQL connection details and pool sizing. The pool
// knobs have defaults suited to a single instance; tune them per
// deployment rather than in code.
type DBConfig struct {
	User string `env:"USER, required"`
	Pass string `env:"PASS"`
	Host string `env:"HOST, default=localhost"`
	Port string `env:"PORT, default=3306"`
	Name string `env:"NAME, required"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS, default=25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS, default=25"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME, default=30m"`
	PingTimeout     time.Duration `env:"PING_TIMEOUT, default=5s"`
}

// RateLimitConfig tunes the Redis token-bucket rate limiter. When Redis
// is unreachable at startup the limiter is disabled regardless of
// Enabled.
type RateLimitConfig struct {
	Enabled        bool          `env:"ENABLED, default=true"`
	Capacity       int           `env:"CAPACITY, default=60"`
	RefillTokens   int           `env:"REFILL_TOKENS, default=1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL, default=1s"`
	TTL            time.Duration `env:"TTL, default=10m"`
	Prefix         string        `env:"PREFIX, default=rl"`
}

// CacheConfig tunes the Redis response cache for read endpoints.
type CacheConfig struct {
	Enabled      bool          `env:"ENABLED, default=true"`
	TTL          time.Duration `env:"TTL, default=30s"`
	Prefix       string        `env:"PREFIX, default=cache"`
	MaxBodyBytes int           `env:"MAX_BODY_BYTES, default=1048576"`
}

// Load populates a Config from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.RateLimit.Capacity < 1 {
		cfg.RateLimit.Capacity = 1
	}
	if cfg.RateLimit.RefillTokens < 1 {
		cfg.RateLimit.RefillTokens = 1
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RateLimit.RefillInterval; cfg.RateLimit.TTL < minTTL {
		cfg.RateLimit.TTL = minTTL
	}
	return &cfg, nil
}
