// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Audit event levels.
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit event categories.
const (
	AuditCategoryAuth    = "auth"
	AuditCategoryContent = "content"
	AuditCategoryEvents  = "events"
	AuditCategorySystem  = "system"
)

// AuditEvent represents a system audit log entry.
type AuditEvent struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IPAddress string
	Metadata  string // JSON string
	CreatedAt time.Time
}
