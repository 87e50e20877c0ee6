// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

const galleryColumns = `id, entity_kind, entity_id, title, image, date, description, created_at`

func scanGalleryItem(row interface{ Scan(...any) error }) (model.GalleryItem, error) {
	var g model.GalleryItem
	err := row.Scan(&g.ID, &g.EntityKind, &g.EntityID, &g.Title, &g.Image, &g.Date,
		&g.Description, &g.CreatedAt)
	return g, err
}

// CreateGalleryItem inserts a gallery image record.
func (q *Queries) CreateGalleryItem(ctx context.Context, g model.GalleryItem) (model.GalleryItem, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO gallery_items (id, entity_kind, entity_id, title, image, date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+galleryColumns,
		g.ID, g.EntityKind, g.EntityID, g.Title, g.Image, g.Date, g.Description, time.Now())
	return scanGalleryItem(row)
}

// ListGalleryItems returns an entity's gallery, newest first.
func (q *Queries) ListGalleryItems(ctx context.Context, kind model.EntityKind, entityID string) ([]model.GalleryItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+galleryColumns+` FROM gallery_items
		WHERE entity_kind = ? AND entity_id = ?
		ORDER BY created_at DESC, id`, kind, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.GalleryItem
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// DeleteGalleryItem removes a gallery image record.
func (q *Queries) DeleteGalleryItem(ctx context.Context, kind model.EntityKind, entityID string, id string) error {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM gallery_items WHERE entity_kind = ? AND entity_id = ? AND id = ?`,
		kind, entityID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("gallery item %s not found", id)
	}
	return nil
}
