// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

const eventColumns = `id, entity_kind, entity_id, bucket, title, date, time, venue, description,
	organizer, image, capacity, registration_link, registration_fee, registration_deadline,
	created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.EntityKind, &e.EntityID, &e.Bucket, &e.Title, &e.Date, &e.Time,
		&e.Venue, &e.Description, &e.Organizer, &e.Image, &e.Capacity,
		&e.RegistrationLink, &e.RegistrationFee, &e.RegistrationDeadline,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// CreateEvent inserts an event into the bucket already set on the record.
func (q *Queries) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (id, entity_kind, entity_id, bucket, title, date, time, venue, description,
			organizer, image, capacity, registration_link, registration_fee, registration_deadline,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		e.ID, e.EntityKind, e.EntityID, e.Bucket, e.Title, e.Date, e.Time, e.Venue, e.Description,
		e.Organizer, e.Image, e.Capacity, e.RegistrationLink, e.RegistrationFee, e.RegistrationDeadline,
		now, now)
	return scanEvent(row)
}

// GetEvent fetches an event scoped to an entity and bucket. The bucket scope
// matters: dashboard routes address events through their collection, so an id
// sitting in the other bucket must read as not-found.
func (q *Queries) GetEvent(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket, eventID string) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE entity_kind = ? AND entity_id = ? AND bucket = ? AND id = ?`,
		kind, entityID, bucket, eventID)
	return scanEvent(row)
}

// ListEventsByBucket returns one partition of an entity's events. Past events
// are listed newest first, upcoming events soonest first.
func (q *Queries) ListEventsByBucket(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket) ([]model.Event, error) {
	order := "date ASC"
	if bucket == model.BucketPast {
		order = "date DESC"
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE entity_kind = ? AND entity_id = ? AND bucket = ?
		ORDER BY `+order,
		kind, entityID, bucket)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent replaces an event's fields within its current bucket.
func (q *Queries) UpdateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE events
		SET title = ?, date = ?, time = ?, venue = ?, description = ?, organizer = ?, image = ?,
			capacity = ?, registration_link = ?, registration_fee = ?, registration_deadline = ?,
			updated_at = ?
		WHERE entity_kind = ? AND entity_id = ? AND bucket = ? AND id = ?
		RETURNING `+eventColumns,
		e.Title, e.Date, e.Time, e.Venue, e.Description, e.Organizer, e.Image,
		e.Capacity, e.RegistrationLink, e.RegistrationFee, e.RegistrationDeadline,
		time.Now(),
		e.EntityKind, e.EntityID, e.Bucket, e.ID)
	return scanEvent(row)
}

// DeleteEvent removes an event from the bucket it currently occupies.
func (q *Queries) DeleteEvent(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket, eventID string) error {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM events
		WHERE entity_kind = ? AND entity_id = ? AND bucket = ? AND id = ?`,
		kind, entityID, bucket, eventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %s not found in %s bucket", eventID, bucket)
	}
	return nil
}

// MoveEventBucket moves an event between the two persisted collections as a
// delete followed by an insert, preserving every field except the bucket.
// The two statements must run inside the same transaction; callers pass a
// Queries bound via WithTx.
func (q *Queries) MoveEventBucket(ctx context.Context, e model.Event, to model.Bucket) (model.Event, error) {
	if err := q.DeleteEvent(ctx, e.EntityKind, e.EntityID, e.Bucket, e.ID); err != nil {
		return model.Event{}, fmt.Errorf("removing from %s: %w", e.Bucket, err)
	}
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (id, entity_kind, entity_id, bucket, title, date, time, venue, description,
			organizer, image, capacity, registration_link, registration_fee, registration_deadline,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		e.ID, e.EntityKind, e.EntityID, to, e.Title, e.Date, e.Time, e.Venue, e.Description,
		e.Organizer, e.Image, e.Capacity, e.RegistrationLink, e.RegistrationFee, e.RegistrationDeadline,
		e.CreatedAt, time.Now())
	inserted, err := scanEvent(row)
	if err != nil {
		return model.Event{}, fmt.Errorf("inserting into %s: %w", to, err)
	}
	return inserted, nil
}
