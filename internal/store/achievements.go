// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

const achievementColumns = `id, entity_kind, entity_id, title, year, category, awarded_by,
	recipient, value, date, image, description, created_at, updated_at`

func scanAchievement(row interface{ Scan(...any) error }) (model.Achievement, error) {
	var a model.Achievement
	err := row.Scan(&a.ID, &a.EntityKind, &a.EntityID, &a.Title, &a.Year, &a.Category,
		&a.AwardedBy, &a.Recipient, &a.Value, &a.Date, &a.Image, &a.Description,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateAchievement inserts an achievement for an entity.
func (q *Queries) CreateAchievement(ctx context.Context, a model.Achievement) (model.Achievement, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO achievements (entity_kind, entity_id, title, year, category, awarded_by,
			recipient, value, date, image, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+achievementColumns,
		a.EntityKind, a.EntityID, a.Title, a.Year, a.Category, a.AwardedBy,
		a.Recipient, a.Value, a.Date, a.Image, a.Description, now, now)
	return scanAchievement(row)
}

// GetAchievement fetches an achievement scoped to an entity.
func (q *Queries) GetAchievement(ctx context.Context, kind model.EntityKind, entityID string, id int64) (model.Achievement, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+achievementColumns+` FROM achievements
		WHERE entity_kind = ? AND entity_id = ? AND id = ?`, kind, entityID, id)
	return scanAchievement(row)
}

// ListAchievements returns an entity's achievements, most recent first.
func (q *Queries) ListAchievements(ctx context.Context, kind model.EntityKind, entityID string) ([]model.Achievement, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+achievementColumns+` FROM achievements
		WHERE entity_kind = ? AND entity_id = ?
		ORDER BY date DESC, id DESC`, kind, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []model.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// UpdateAchievement replaces an achievement's editable fields.
func (q *Queries) UpdateAchievement(ctx context.Context, a model.Achievement) (model.Achievement, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE achievements
		SET title = ?, year = ?, category = ?, awarded_by = ?, recipient = ?, value = ?,
			date = ?, image = ?, description = ?, updated_at = ?
		WHERE entity_kind = ? AND entity_id = ? AND id = ?
		RETURNING `+achievementColumns,
		a.Title, a.Year, a.Category, a.AwardedBy, a.Recipient, a.Value,
		a.Date, a.Image, a.Description, time.Now(),
		a.EntityKind, a.EntityID, a.ID)
	return scanAchievement(row)
}

// DeleteAchievement removes an achievement.
func (q *Queries) DeleteAchievement(ctx context.Context, kind model.EntityKind, entityID string, id int64) error {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM achievements WHERE entity_kind = ? AND entity_id = ? AND id = ?`,
		kind, entityID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("achievement %d not found", id)
	}
	return nil
}
