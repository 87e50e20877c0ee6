// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/chapter.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/chapter.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Errorf("Env = %q, IsDevelopment = %v", cfg.Env, cfg.IsDevelopment())
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("TokenTTL = %s, want 168h", cfg.TokenTTL)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("CacheBackend = %q, want memory", cfg.CacheBackend)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.AuditRetention != 2160*time.Hour {
		t.Errorf("AuditRetention = %s, want 2160h", cfg.AuditRetention)
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CHAPTER_DB_PATH", "/custom/path.db")
	setEnv(t, "CHAPTER_SERVER_HOST", "0.0.0.0")
	setEnv(t, "CHAPTER_SERVER_PORT", "3000")
	setEnv(t, "CHAPTER_ENV", "production")
	setEnv(t, "CHAPTER_TOKEN_TTL", "24h")
	setEnv(t, "CHAPTER_CORS_ORIGINS", "https://chapter.example.edu,https://admin.example.edu")
	setEnv(t, "CHAPTER_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want 0.0.0.0:3000", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("production config reports development")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s, want 24h", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example.edu" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown cache backend",
			env:     map[string]string{"CHAPTER_CACHE_BACKEND": "memcached"},
			wantErr: "CHAPTER_CACHE_BACKEND",
		},
		{
			name:    "redis backend without url",
			env:     map[string]string{"CHAPTER_CACHE_BACKEND": "redis"},
			wantErr: "CHAPTER_REDIS_URL",
		},
		{
			name:    "non-positive token ttl",
			env:     map[string]string{"CHAPTER_TOKEN_TTL": "-1h"},
			wantErr: "CHAPTER_TOKEN_TTL",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"CHAPTER_SERVER_PORT": "70000"},
			wantErr: "CHAPTER_SERVER_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_RedisBackendWithURL(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CHAPTER_CACHE_BACKEND", "redis")
	setEnv(t, "CHAPTER_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CacheBackend != "redis" || cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("cache config = %q %q", cfg.CacheBackend, cfg.RedisURL)
	}
}
