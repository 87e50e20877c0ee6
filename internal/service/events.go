// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic over the store: event bucket
// placement and synchronization, and the audit trail.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ieeesb/chapter-go/internal/metrics"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/store"
)

// EventService owns event placement. Every event write goes through here so
// bucket membership always agrees with the event's date at write time.
type EventService struct {
	db      *sql.DB
	queries *store.Queries
	// now is swappable for tests.
	now func() time.Time
}

// NewEventService creates an EventService over the given database.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		db:      db,
		queries: store.New(db),
		now:     time.Now,
	}
}

// List returns one partition of an entity's events without reclassifying.
func (s *EventService) List(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket) ([]model.Event, error) {
	return s.queries.ListEventsByBucket(ctx, kind, entityID, bucket)
}

// Get fetches a single event from the named bucket.
func (s *EventService) Get(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket, eventID string) (model.Event, error) {
	return s.queries.GetEvent(ctx, kind, entityID, bucket, eventID)
}

// SyncBuckets reclassifies every event of an entity against the current day
// and moves stale records between the persisted collections. It runs when a
// dashboard loads its event lists; there is no background timer, so buckets
// may read stale until the next load or mutation touches them. Returns the
// number of events moved.
func (s *EventService) SyncBuckets(ctx context.Context, kind model.EntityKind, entityID string) (int, error) {
	now := s.now()

	past, err := s.queries.ListEventsByBucket(ctx, kind, entityID, model.BucketPast)
	if err != nil {
		return 0, fmt.Errorf("listing past events: %w", err)
	}
	upcoming, err := s.queries.ListEventsByBucket(ctx, kind, entityID, model.BucketUpcoming)
	if err != nil {
		return 0, fmt.Errorf("listing upcoming events: %w", err)
	}

	if _, _, moved := model.ReclassifyAll(past, upcoming, now); !moved {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting move transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	count := 0
	for _, e := range upcoming {
		if model.Classify(e.Date, now) != model.BucketPast {
			continue
		}
		if _, err := qtx.MoveEventBucket(ctx, e, model.BucketPast); err != nil {
			return 0, fmt.Errorf("moving event %s to past: %w", e.ID, err)
		}
		count++
		metrics.EventBucketMovesTotal.WithLabelValues(string(model.BucketPast)).Inc()
	}
	for _, e := range past {
		if model.Classify(e.Date, now) != model.BucketUpcoming {
			continue
		}
		if _, err := qtx.MoveEventBucket(ctx, e, model.BucketUpcoming); err != nil {
			return 0, fmt.Errorf("moving event %s to upcoming: %w", e.ID, err)
		}
		count++
		metrics.EventBucketMovesTotal.WithLabelValues(string(model.BucketUpcoming)).Inc()
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing moves: %w", err)
	}

	slog.Info("reclassified event buckets",
		"entity_kind", kind, "entity_id", entityID, "moved", count)
	return count, nil
}

// Create assigns an id, classifies the event by its date, and persists it in
// the resulting bucket. The caller never chooses the bucket.
func (s *EventService) Create(ctx context.Context, e model.Event) (model.Event, error) {
	e.ID = uuid.NewString()
	e.Bucket = model.PlaceOnCreate(e, s.now())
	return s.queries.CreateEvent(ctx, e)
}

// Update rewrites an event addressed through the bucket it currently sits in.
// If the new date lands it in the other bucket, the record is moved there in
// the same operation.
func (s *EventService) Update(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket, eventID string, updated model.Event) (model.Event, error) {
	existing, err := s.queries.GetEvent(ctx, kind, entityID, bucket, eventID)
	if err != nil {
		return model.Event{}, err
	}

	updated.ID = existing.ID
	updated.EntityKind = kind
	updated.EntityID = entityID
	updated.Bucket = existing.Bucket
	updated.CreatedAt = existing.CreatedAt

	newBucket, move := model.PlaceOnEdit(updated, existing.Bucket, s.now())
	if !move {
		return s.queries.UpdateEvent(ctx, updated)
	}

	// The move re-inserts the full record, so the edited fields ride along
	// with the bucket change in one transaction.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Event{}, fmt.Errorf("starting move transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	moved, err := s.queries.WithTx(tx).MoveEventBucket(ctx, updated, newBucket)
	if err != nil {
		return model.Event{}, fmt.Errorf("moving event to %s: %w", newBucket, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Event{}, fmt.Errorf("committing move: %w", err)
	}

	metrics.EventBucketMovesTotal.WithLabelValues(string(newBucket)).Inc()
	slog.Info("event changed bucket on edit",
		"event_id", eventID, "from", existing.Bucket, "to", newBucket)
	return moved, nil
}

// Delete removes an event from the bucket it currently occupies.
func (s *EventService) Delete(ctx context.Context, kind model.EntityKind, entityID string, bucket model.Bucket, eventID string) error {
	return s.queries.DeleteEvent(ctx, kind, entityID, bucket, eventID)
}
