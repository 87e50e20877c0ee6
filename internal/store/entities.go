// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

const entityColumns = `id, kind, name, image, description, vision, mission, objectives, email, created_at, updated_at`

func scanEntity(row interface{ Scan(...any) error }) (model.Entity, error) {
	var e model.Entity
	err := row.Scan(&e.ID, &e.Kind, &e.Name, &e.Image, &e.Description,
		&e.Vision, &e.Mission, &e.Objectives, &e.Email, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// CreateEntityParams holds the fields for CreateEntity.
type CreateEntityParams struct {
	ID          string
	Kind        model.EntityKind
	Name        string
	Image       string
	Description string
	Vision      string
	Mission     string
	Objectives  string
	Email       string
}

// CreateEntity inserts a new society or council.
func (q *Queries) CreateEntity(ctx context.Context, arg CreateEntityParams) (model.Entity, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO entities (id, kind, name, image, description, vision, mission, objectives, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+entityColumns,
		arg.ID, arg.Kind, arg.Name, arg.Image, arg.Description,
		arg.Vision, arg.Mission, arg.Objectives, arg.Email, now, now)
	return scanEntity(row)
}

// GetEntity fetches a single entity by kind and id.
func (q *Queries) GetEntity(ctx context.Context, kind model.EntityKind, id string) (model.Entity, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE kind = ? AND id = ?`, kind, id)
	return scanEntity(row)
}

// ListEntities returns every entity of the given kind, ordered by name.
func (q *Queries) ListEntities(ctx context.Context, kind model.EntityKind) ([]model.Entity, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE kind = ? ORDER BY name`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []model.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// UpdateEntityParams holds the editable fields for UpdateEntity.
type UpdateEntityParams struct {
	Name        string
	Image       string
	Description string
	Vision      string
	Mission     string
	Objectives  string
	Email       string
}

// UpdateEntity replaces an entity's editable fields.
func (q *Queries) UpdateEntity(ctx context.Context, kind model.EntityKind, id string, arg UpdateEntityParams) (model.Entity, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE entities
		SET name = ?, image = ?, description = ?, vision = ?, mission = ?, objectives = ?, email = ?, updated_at = ?
		WHERE kind = ? AND id = ?
		RETURNING `+entityColumns,
		arg.Name, arg.Image, arg.Description, arg.Vision, arg.Mission,
		arg.Objectives, arg.Email, time.Now(), kind, id)
	return scanEntity(row)
}

// GetEntityStats derives the directory-card counters for an entity.
func (q *Queries) GetEntityStats(ctx context.Context, kind model.EntityKind, id string) (model.EntityStats, error) {
	var s model.EntityStats
	row := q.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM members WHERE entity_kind = ?1 AND entity_id = ?2),
			(SELECT COUNT(*) FROM events WHERE entity_kind = ?1 AND entity_id = ?2),
			(SELECT COUNT(*) FROM achievements WHERE entity_kind = ?1 AND entity_id = ?2)`,
		kind, id)
	err := row.Scan(&s.Members, &s.Events, &s.Awards)
	return s, err
}
