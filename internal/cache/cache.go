// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer for public directory responses.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement. Implementations must
// be safe for concurrent use. Values are []byte so in-memory and Redis
// backends behave identically.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the backend's
	// default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
