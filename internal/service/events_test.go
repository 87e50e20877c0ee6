// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/store"
)

func testEventService(t *testing.T, now time.Time) (*EventService, *store.Queries) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	svc := NewEventService(db)
	svc.now = func() time.Time { return now }
	return svc, store.New(db)
}

func TestCreatePlacesByDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.Local)
	svc, _ := testEventService(t, now)
	ctx := context.Background()

	past, err := svc.Create(ctx, model.Event{
		EntityKind: model.KindSociety,
		EntityID:   "ieee-hkn-society",
		Title:      "Yesterday's Workshop",
		Date:       "2026-08-30",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BucketPast, past.Bucket)
	assert.NotEmpty(t, past.ID)

	today, err := svc.Create(ctx, model.Event{
		EntityKind: model.KindSociety,
		EntityID:   "ieee-hkn-society",
		Title:      "Today's Seminar",
		Date:       "2026-08-31",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BucketUpcoming, today.Bucket, "an event today is still upcoming")

	future, err := svc.Create(ctx, model.Event{
		EntityKind: model.KindSociety,
		EntityID:   "ieee-hkn-society",
		Title:      "Next Month's Hackathon",
		Date:       "2026-09-20",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BucketUpcoming, future.Bucket)
}

func TestSyncBucketsMovesExpiredUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	svc, q := testEventService(t, now)
	ctx := context.Background()

	// Created while still in the future, then the clock moved past it.
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 9, 0, 0, 0, time.Local) }
	expired, err := svc.Create(ctx, model.Event{
		EntityKind: model.KindSociety,
		EntityID:   "ieee-hkn-society",
		Title:      "Mid-August Meetup",
		Date:       "2026-08-15",
	})
	require.NoError(t, err)
	require.Equal(t, model.BucketUpcoming, expired.Bucket)

	still, err := svc.Create(ctx, model.Event{
		EntityKind: model.KindSociety,
		EntityID:   "ieee-hkn-society",
		Title:      "September Talk",
		Date:       "2026-09-10",
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return now }
	moved, err := svc.SyncBuckets(ctx, model.KindSociety, "ieee-hkn-society")
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	past, err := q.ListEventsByBucket(ctx, model.KindSociety, "ieee-hkn-society", model.BucketPast)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, expired.ID, past[0].ID)
	assert.True(t, past[0].CreatedAt.Equal(expired.CreatedAt), "move must preserve created_at")

	upcoming, err := q.ListEventsByBucket(ctx, model.KindSociety, "ieee-hkn-society", model.BucketUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, still.ID, upcoming[0].ID)

	// A second sync with the same clock is a no-op.
	moved, err = svc.SyncBuckets(ctx, model.KindSociety, "ieee-hkn-society")
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestSyncBucketsRestoresForwardEditedPast(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	svc, q := testEventService(t, now)
	ctx := context.Background()

	// A past event whose stored date points at the future, as happens when a
	// date edit raced a crash between the relabel and the move.
	stale, err := q.CreateEvent(ctx, model.Event{
		ID:         "aaaaaaaa-0000-0000-0000-000000000001",
		EntityKind: model.KindCouncil,
		EntityID:   "ieee-student-council",
		Bucket:     model.BucketPast,
		Title:      "Rescheduled AGM",
		Date:       "2026-12-01",
	})
	require.NoError(t, err)

	moved, err := svc.SyncBuckets(ctx, model.KindCouncil, "ieee-student-council")
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	upcoming, err := q.ListEventsByBucket(ctx, model.KindCouncil, "ieee-student-council", model.BucketUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, stale.ID, upcoming[0].ID)
}

func TestUpdateMovesBucketWhenDateCrossesToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	svc, q := testEventService(t, now)
	ctx := context.Background()

	e, err := svc.Create(ctx, model.Event{
		EntityKind: model.KindSociety,
		EntityID:   "ieee-hkn-society",
		Title:      "Symposium",
		Date:       "2026-10-01",
		Venue:      "Hall A",
	})
	require.NoError(t, err)
	require.Equal(t, model.BucketUpcoming, e.Bucket)

	// Date edited into the past: the record must land in the past collection.
	updated, err := svc.Update(ctx, model.KindSociety, "ieee-hkn-society", model.BucketUpcoming, e.ID, model.Event{
		Title: "Symposium",
		Date:  "2026-07-01",
		Venue: "Hall B",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BucketPast, updated.Bucket)
	assert.Equal(t, "Hall B", updated.Venue)
	assert.True(t, updated.CreatedAt.Equal(e.CreatedAt))

	_, err = q.GetEvent(ctx, model.KindSociety, "ieee-hkn-society", model.BucketUpcoming, e.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows, "event must leave the upcoming collection")

	// An edit that keeps the date in the same bucket stays put.
	same, err := svc.Update(ctx, model.KindSociety, "ieee-hkn-society", model.BucketPast, e.ID, model.Event{
		Title: "Symposium (recap posted)",
		Date:  "2026-07-01",
		Venue: "Hall B",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BucketPast, same.Bucket)
	assert.Equal(t, "Symposium (recap posted)", same.Title)
}

func TestUpdateMissingEvent(t *testing.T) {
	svc, _ := testEventService(t, time.Now())
	_, err := svc.Update(context.Background(), model.KindSociety, "ieee-hkn-society", model.BucketUpcoming, "no-such-id", model.Event{
		Title: "Ghost",
		Date:  "2030-01-01",
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAuditServiceRoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	svc := NewAuditService(db)
	ctx := context.Background()

	userID := int64(7)
	require.NoError(t, svc.LogAuth(ctx, model.AuditLevelInfo, "user logged in", &userID, "203.0.113.9", map[string]any{"email": "hkn.admin@ieee.example.edu"}))
	require.NoError(t, svc.LogEvents(ctx, model.AuditLevelInfo, "event moved to past", nil, "", nil))

	purged, err := svc.PurgeOlderThan(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, purged, "fresh entries survive retention purge")

	purged, err = svc.PurgeOlderThan(ctx, -time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)
}
