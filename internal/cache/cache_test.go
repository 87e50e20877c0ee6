// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

func TestMemoryCacheBasics(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("missing key error = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want v", got)
	}

	// Returned slice is a copy
	got[0] = 'x'
	again, _ := c.Get(ctx, "k")
	if string(again) != "v" {
		t.Error("stored value was mutated through the returned slice")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("deleted key error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired key error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	_ = c.Set(ctx, "directory:society", []byte("a"), 0)
	_ = c.Set(ctx, "directory:council", []byte("b"), 0)
	_ = c.Set(ctx, "other", []byte("c"), 0)

	if err := c.DeleteByPrefix(ctx, "directory:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if _, err := c.Get(ctx, "directory:society"); !errors.Is(err, ErrCacheMiss) {
		t.Error("directory:society survived prefix delete")
	}
	if _, err := c.Get(ctx, "other"); err != nil {
		t.Errorf("unrelated key deleted: %v", err)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	_ = c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close error = %v, want ErrCacheClosed", err)
	}
	// Double close is safe
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestDirectoryRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	d := NewDirectory(c, time.Minute)
	ctx := context.Background()

	if _, err := d.GetList(ctx, model.KindSociety); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("cold cache error = %v, want ErrCacheMiss", err)
	}

	societies := []model.Entity{
		{ID: "ieee-hkn-society", Kind: model.KindSociety, Name: "IEEE HKN Society"},
		{ID: "ieee-cas", Kind: model.KindSociety, Name: "IEEE CAS Society"},
	}
	if err := d.SetList(ctx, model.KindSociety, societies); err != nil {
		t.Fatalf("SetList: %v", err)
	}

	got, err := d.GetList(ctx, model.KindSociety)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if len(got) != 2 || got[0].ID != "ieee-hkn-society" {
		t.Errorf("GetList = %+v", got)
	}

	// Other kind is a separate key
	if _, err := d.GetList(ctx, model.KindCouncil); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("council listing error = %v, want ErrCacheMiss", err)
	}

	if err := d.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := d.GetList(ctx, model.KindSociety); !errors.Is(err, ErrCacheMiss) {
		t.Error("listing survived invalidation")
	}
}

func TestFactoryUnknownBackend(t *testing.T) {
	if _, err := New("memcached", "", time.Minute); err == nil {
		t.Error("unknown backend accepted")
	}
	c, err := New("", "", time.Minute)
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	_ = c.Close()
}
