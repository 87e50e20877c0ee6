// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and ERROR records
// into the audit log table alongside the wrapped handler's output.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/store"
)

// AuditLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above a threshold level to the audit log.
type AuditLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewAuditLogHandler wraps inner so that WARN and above also land in the
// audit log.
func NewAuditLogHandler(inner slog.Handler, db *sql.DB) *AuditLogHandler {
	return &AuditLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *AuditLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeToAuditLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *AuditLogHandler) WithGroup(name string) slog.Handler {
	return &AuditLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

func (h *AuditLogHandler) writeToAuditLog(r slog.Record) {
	// Background context: the record must be persisted even when the
	// request context that produced it is already cancelled.
	_, _ = h.queries.CreateAuditEvent(context.Background(), store.CreateAuditEventParams{
		Level:     recordLevel(r.Level),
		Category:  recordCategory(r),
		Message:   r.Message,
		UserID:    sql.NullInt64{},
		Metadata:  recordMetadata(r),
		CreatedAt: r.Time,
	})
}

func recordLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.AuditLevelError
	case level >= slog.LevelWarn:
		return model.AuditLevelWarning
	default:
		return model.AuditLevelInfo
	}
}

// recordCategory uses an explicit "category" attribute when present and
// otherwise guesses from the message text.
func recordCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "token"):
		return model.AuditCategoryAuth
	case strings.Contains(msg, "event"):
		return model.AuditCategoryEvents
	case strings.Contains(msg, "member") || strings.Contains(msg, "achievement") ||
		strings.Contains(msg, "gallery") || strings.Contains(msg, "profile"):
		return model.AuditCategoryContent
	default:
		return model.AuditCategorySystem
	}
}

// recordMetadata collects the record attributes into a flat JSON object.
func recordMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}

func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
