// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ieeesb/chapter-go/internal/cache"
	"github.com/ieeesb/chapter-go/internal/config"
	"github.com/ieeesb/chapter-go/internal/handler"
	"github.com/ieeesb/chapter-go/internal/logging"
	"github.com/ieeesb/chapter-go/internal/scheduler"
	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/session"
	"github.com/ieeesb/chapter-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	doSeed := flag.Bool("seed", false, "Seed sample societies, councils, and admin accounts")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "chapter - IEEE student chapter backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_DB_PATH          SQLite database path (default: ./data/chapter.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_TOKEN_TTL        Session token lifetime (default: 168h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_CACHE_BACKEND    Cache backend: memory|redis (default: memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_REDIS_URL        Redis URL when the redis backend is selected\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CHAPTER_CORS_ORIGINS     Comma-separated allowed origins (default: http://localhost:3000)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("chapter %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(*doSeed); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(seedFlag bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records also land in the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("audit log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if seedFlag || cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("database seeded")
	}

	appCache, err := cache.New(cfg.CacheBackend, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache initialized", "backend", cfg.CacheBackend)

	gate := session.NewGate(db, cfg.TokenTTL)
	events := service.NewEventService(db)
	audit := service.NewAuditService(db)

	sched := scheduler.New(db, audit, cfg.AuditRetention, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		DB:            db,
		Gate:          gate,
		Events:        events,
		Audit:         audit,
		Cache:         appCache,
		IsDevelopment: cfg.IsDevelopment(),
		CORSOrigins:   cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
