// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"time"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New creates a cache of the configured backend. Redis requires a URL; the
// memory backend ignores it.
func New(backend, redisURL string, defaultTTL time.Duration) (Cache, error) {
	switch backend {
	case "", BackendMemory:
		slog.Info("using in-memory cache", "default_ttl", defaultTTL)
		return NewMemoryCache(defaultTTL), nil
	case BackendRedis:
		c, err := NewRedisCache(redisURL, "chapter:", defaultTTL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("using redis cache", "default_ttl", defaultTTL)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
