// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ieeesb/chapter-go/internal/metrics"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/store"
)

// Scheduler runs the periodic maintenance jobs: expired token purging and
// audit log retention. Event bucket reclassification is deliberately not a
// job here; it happens on dashboard loads and event writes only.
type Scheduler struct {
	queries        *store.Queries
	audit          *service.AuditService
	cron           *cron.Cron
	logger         *slog.Logger
	auditRetention time.Duration
}

// New creates a new scheduler instance.
func New(db *sql.DB, audit *service.AuditService, auditRetention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries:        store.New(db),
		audit:          audit,
		cron:           cron.New(),
		logger:         logger,
		auditRetention: auditRetention,
	}
}

// Start registers the maintenance jobs and begins running them.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.purgeOldAuditEvents); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeExpiredTokens() {
	ctx := context.Background()

	purged, err := s.queries.DeleteExpiredAuthTokens(ctx, time.Now())
	if err != nil {
		s.logger.Error("expired token purge failed", "error", err)
		return
	}
	if purged == 0 {
		return
	}

	metrics.TokensPurgedTotal.Add(float64(purged))
	s.logger.Info("purged expired session tokens", "count", purged)
	_ = s.audit.LogSystem(ctx, model.AuditLevelInfo, "expired session tokens purged", nil, "",
		map[string]any{"count": purged})
}

func (s *Scheduler) purgeOldAuditEvents() {
	ctx := context.Background()

	removed, err := s.audit.PurgeOlderThan(ctx, s.auditRetention)
	if err != nil {
		s.logger.Error("audit log retention sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("audit log retention sweep", "removed", removed, "retention", s.auditRetention)
	}
}
