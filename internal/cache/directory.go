// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ieeesb/chapter-go/internal/metrics"
	"github.com/ieeesb/chapter-go/internal/model"
)

// Directory caches the public entity directory listings. The directory
// changes rarely, so listings are cached as encoded JSON and invalidated
// whenever an entity profile is written.
type Directory struct {
	cache Cache
	ttl   time.Duration
}

// NewDirectory wraps a cache backend for directory listings.
func NewDirectory(c Cache, ttl time.Duration) *Directory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Directory{cache: c, ttl: ttl}
}

func listKey(kind model.EntityKind) string {
	return "directory:" + string(kind)
}

// GetList returns the cached listing for a kind, or ErrCacheMiss.
func (d *Directory) GetList(ctx context.Context, kind model.EntityKind) ([]model.Entity, error) {
	raw, err := d.cache.Get(ctx, listKey(kind))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
		}
		return nil, err
	}

	var entities []model.Entity
	if err := json.Unmarshal(raw, &entities); err != nil {
		// A corrupt entry reads as a miss and gets overwritten on SetList.
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
		return nil, ErrCacheMiss
	}
	metrics.CacheOperationsTotal.WithLabelValues("hit").Inc()
	return entities, nil
}

// SetList stores a listing for a kind.
func (d *Directory) SetList(ctx context.Context, kind model.EntityKind, entities []model.Entity) error {
	raw, err := json.Marshal(entities)
	if err != nil {
		return err
	}
	return d.cache.Set(ctx, listKey(kind), raw, d.ttl)
}

// Invalidate drops all cached listings. Called after any entity profile
// write.
func (d *Directory) Invalidate(ctx context.Context) error {
	return d.cache.DeleteByPrefix(ctx, "directory:")
}
