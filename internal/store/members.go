// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

const memberColumns = `id, entity_kind, entity_id, name, role, email, phone, photo, linkedin, bio,
	sort_order, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.EntityKind, &m.EntityID, &m.Name, &m.Role, &m.Email, &m.Phone,
		&m.Photo, &m.LinkedIn, &m.Bio, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateMember inserts a slate member for an entity.
func (q *Queries) CreateMember(ctx context.Context, m model.Member) (model.Member, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO members (entity_kind, entity_id, name, role, email, phone, photo, linkedin, bio,
			sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+memberColumns,
		m.EntityKind, m.EntityID, m.Name, m.Role, m.Email, m.Phone, m.Photo, m.LinkedIn, m.Bio,
		m.SortOrder, now, now)
	return scanMember(row)
}

// GetMember fetches a member scoped to an entity.
func (q *Queries) GetMember(ctx context.Context, kind model.EntityKind, entityID string, id int64) (model.Member, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE entity_kind = ? AND entity_id = ? AND id = ?`, kind, entityID, id)
	return scanMember(row)
}

// ListMembers returns an entity's slate ordered for display.
func (q *Queries) ListMembers(ctx context.Context, kind model.EntityKind, entityID string) ([]model.Member, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE entity_kind = ? AND entity_id = ?
		ORDER BY sort_order, id`, kind, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateMember replaces a member's editable fields.
func (q *Queries) UpdateMember(ctx context.Context, m model.Member) (model.Member, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE members
		SET name = ?, role = ?, email = ?, phone = ?, photo = ?, linkedin = ?, bio = ?,
			sort_order = ?, updated_at = ?
		WHERE entity_kind = ? AND entity_id = ? AND id = ?
		RETURNING `+memberColumns,
		m.Name, m.Role, m.Email, m.Phone, m.Photo, m.LinkedIn, m.Bio,
		m.SortOrder, time.Now(),
		m.EntityKind, m.EntityID, m.ID)
	return scanMember(row)
}

// DeleteMember removes a member from an entity's slate.
func (q *Queries) DeleteMember(ctx context.Context, kind model.EntityKind, entityID string, id int64) error {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM members WHERE entity_kind = ? AND entity_id = ? AND id = ?`,
		kind, entityID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("member %d not found", id)
	}
	return nil
}
