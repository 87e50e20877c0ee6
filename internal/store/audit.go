// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

// CreateAuditEventParams holds the fields for CreateAuditEvent.
type CreateAuditEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IPAddress string
	Metadata  string
	CreatedAt time.Time
}

// CreateAuditEvent appends an entry to the audit log.
func (q *Queries) CreateAuditEvent(ctx context.Context, arg CreateAuditEventParams) (model.AuditEvent, error) {
	var e model.AuditEvent
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO audit_events (level, category, message, user_id, ip_address, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, level, category, message, user_id, ip_address, metadata, created_at`,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.IPAddress, arg.Metadata, arg.CreatedAt)
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID,
		&e.IPAddress, &e.Metadata, &e.CreatedAt)
	return e, err
}

// DeleteOldAuditEvents removes audit entries created before the cutoff.
func (q *Queries) DeleteOldAuditEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM audit_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
