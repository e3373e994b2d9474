// Package config loads the application configuration from the
// environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/redis/go-redis/v9"

	"synagogue-manager/internal/shared/database"
)

// Config holds every runtime setting of the service.
type Config struct {
	Server ServerConfig
	Mongo  database.MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Port string `env:"SERVER_PORT" envDefault:"3000"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string { return s.Host + ":" + s.Port }

// RedisConfig holds the cache settings. The cache is optional; an empty
// address disables it and stores are used uncached.
type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR" envDefault:""`
	Password     string        `env:"REDIS_PASSWORD" envDefault:""`
	Database     int           `env:"REDIS_DATABASE" envDefault:"0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	CacheTTL     time.Duration `env:"REDIS_CACHE_TTL" envDefault:"5m"`
}

// Enabled reports whether a cache address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// NewClient builds the Redis client for the configured cache.
func (r RedisConfig) NewClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         r.Addr,
		Password:     r.Password,
		DB:           r.Database,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		MaxRetries:   r.MaxRetries,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})
}

// JWTConfig holds the token verification settings.
type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY,required"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"synagogue-manager"`
	TokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(&cfg.Server); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.Mongo); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.Redis); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.JWT); err != nil {
		return nil, err
	}

	if len(cfg.JWT.SecretKey) < 32 {
		return nil, errors.New("JWT_SECRET_KEY must be at least 32 characters")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	return cfg, nil
}
