// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/store"
)

// AuditService appends entries to the persistent audit trail.
type AuditService struct {
	queries *store.Queries
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{
		queries: store.New(db),
	}
}

// Log creates a new audit trail entry. Metadata is stored as JSON.
func (s *AuditService) Log(ctx context.Context, level, category, message string, userID *int64, ipAddress string, metadata map[string]any) error {
	var nullUserID sql.NullInt64
	if userID != nil {
		nullUserID = sql.NullInt64{Int64: *userID, Valid: true}
	}

	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateAuditEvent(ctx, store.CreateAuditEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    nullUserID,
		IPAddress: ipAddress,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to write audit entry", "error", err, "message", message)
		return err
	}
	return nil
}

// LogAuth records an authentication event (login, logout, password change).
func (s *AuditService) LogAuth(ctx context.Context, level, message string, userID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, level, model.AuditCategoryAuth, message, userID, ipAddress, metadata)
}

// LogContent records a content mutation (entity profile, members,
// achievements, gallery).
func (s *AuditService) LogContent(ctx context.Context, level, message string, userID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, level, model.AuditCategoryContent, message, userID, ipAddress, metadata)
}

// LogEvents records an event mutation or bucket reclassification.
func (s *AuditService) LogEvents(ctx context.Context, level, message string, userID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, level, model.AuditCategoryEvents, message, userID, ipAddress, metadata)
}

// LogSystem records a system event (startup, shutdown, scheduler runs).
func (s *AuditService) LogSystem(ctx context.Context, level, message string, userID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, level, model.AuditCategorySystem, message, userID, ipAddress, metadata)
}

// PurgeOlderThan removes audit entries older than the given retention window
// and returns how many were removed.
func (s *AuditService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	return s.queries.DeleteOldAuditEvents(ctx, time.Now().Add(-retention))
}
