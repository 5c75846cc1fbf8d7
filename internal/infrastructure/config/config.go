// Package config loads runtime configuration from the environment.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,          default=8080"`
	Env       string `env:"ENV,           default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,     default=info"`

	// StoreBackend selects the record store: "csv" or "mongo".
	StoreBackend string `env:"STORE_BACKEND, default=csv"`
	// DataDir is the directory holding the CSV collections when the csv
	// backend is selected.
	DataDir string `env:"DATA_DIR, default=data"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crowdfund_system"`
}

type RedisConfig struct {
	// Enabled turns on the Redis-backed pledge replay cache. When false,
	// repeated Idempotency-Keys are treated as fresh submissions.
	Enabled bool   `env:"REDIS_ENABLED, default=false"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreBackend != "csv" && cfg.StoreBackend != "mongo" {
		return nil, fmt.Errorf("load config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
