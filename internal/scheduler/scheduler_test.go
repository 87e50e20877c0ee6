// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/store"
)

func testScheduler(t *testing.T) (*Scheduler, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return New(db, service.NewAuditService(db), 90*24*time.Hour, slog.Default()), db
}

func TestStartStop(t *testing.T) {
	s, _ := testScheduler(t)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Errorf("registered %d jobs, want 2", got)
	}
	s.Stop()
}

func TestPurgeExpiredTokens(t *testing.T) {
	s, db := testScheduler(t)
	ctx := context.Background()
	queries := store.New(db)

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email:        "admin@ieee.example.edu",
		PasswordHash: "x",
		Name:         "Admin",
		Role:         "SOCIETY_ADMIN",
		EntityKind:   "society",
		EntityID:     "ieee-hkn-society",
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	now := time.Now()
	for i, expiry := range []time.Time{now.Add(-time.Hour), now.Add(time.Hour)} {
		_, err := queries.CreateAuthToken(ctx, store.CreateAuthTokenParams{
			UserID:    user.ID,
			TokenHash: "hash-" + string(rune('a'+i)),
			ExpiresAt: expiry,
		})
		if err != nil {
			t.Fatalf("creating token: %v", err)
		}
	}

	s.purgeExpiredTokens()

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM auth_tokens`).Scan(&remaining); err != nil {
		t.Fatalf("counting tokens: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining tokens = %d, want 1", remaining)
	}

	// The purge itself is recorded in the audit log
	var audited int
	if err := db.QueryRow(`SELECT COUNT(*) FROM audit_events WHERE category = 'system'`).Scan(&audited); err != nil {
		t.Fatalf("counting audit events: %v", err)
	}
	if audited != 1 {
		t.Errorf("audit entries = %d, want 1", audited)
	}
}

func TestPurgeOldAuditEvents(t *testing.T) {
	s, db := testScheduler(t)
	ctx := context.Background()
	queries := store.New(db)

	for _, age := range []time.Duration{100 * 24 * time.Hour, time.Hour} {
		_, err := queries.CreateAuditEvent(ctx, store.CreateAuditEventParams{
			Level:     "info",
			Category:  "system",
			Message:   "entry",
			Metadata:  "{}",
			CreatedAt: time.Now().Add(-age),
		})
		if err != nil {
			t.Fatalf("creating audit event: %v", err)
		}
	}

	s.purgeOldAuditEvents()

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM audit_events`).Scan(&remaining); err != nil {
		t.Fatalf("counting audit events: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining audit events = %d, want 1", remaining)
	}
}
