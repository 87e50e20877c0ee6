// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CHAPTER_DB_PATH" envDefault:"./data/chapter.db"`
	ServerHost string `env:"CHAPTER_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CHAPTER_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CHAPTER_ENV" envDefault:"development"`
	LogLevel   string `env:"CHAPTER_LOG_LEVEL" envDefault:"info"`

	// Session tokens
	TokenTTL time.Duration `env:"CHAPTER_TOKEN_TTL" envDefault:"168h"`

	// Cache configuration
	CacheBackend string        `env:"CHAPTER_CACHE_BACKEND" envDefault:"memory"` // memory or redis
	RedisURL     string        `env:"CHAPTER_REDIS_URL"`
	CacheTTL     time.Duration `env:"CHAPTER_CACHE_TTL" envDefault:"1h"`

	// CORS allowed origins for the dashboard frontends
	CORSOrigins []string `env:"CHAPTER_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Audit log retention
	AuditRetention time.Duration `env:"CHAPTER_AUDIT_RETENTION" envDefault:"2160h"` // 90 days

	// Seeding configuration
	DoSeed bool `env:"CHAPTER_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return nil, fmt.Errorf("CHAPTER_CACHE_BACKEND must be memory or redis, got %q", cfg.CacheBackend)
	}
	if cfg.CacheBackend == "redis" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("CHAPTER_REDIS_URL is required when CHAPTER_CACHE_BACKEND is redis")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("CHAPTER_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("CHAPTER_SERVER_PORT out of range: %d", cfg.ServerPort)
	}

	return cfg, nil
}
