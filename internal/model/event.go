// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Bucket is one of the two event partitions. The backend stores past and
// upcoming events as separate collections, so bucket membership is a real
// storage location, not a display flag.
type Bucket string

// Event buckets.
const (
	BucketPast     Bucket = "past"
	BucketUpcoming Bucket = "upcoming"
)

// Valid reports whether b is a known bucket.
func (b Bucket) Valid() bool {
	return b == BucketPast || b == BucketUpcoming
}

// EventDateLayout is the calendar-date format event dates are stored in.
// Dates are timezone-less calendar days; the server's local midnight is the
// classification boundary.
const EventDateLayout = "2006-01-02"

// Event represents one occurrence (past or upcoming) belonging to exactly one
// entity. Only Title and Date are interpreted by the service; the remaining
// fields are carried for presentation.
type Event struct {
	ID                   string     `json:"id"`
	EntityKind           EntityKind `json:"-"`
	EntityID             string     `json:"-"`
	Bucket               Bucket     `json:"-"`
	Title                string     `json:"title"`
	Date                 string     `json:"date"`
	Time                 string     `json:"time,omitempty"`
	Venue                string     `json:"venue,omitempty"`
	Description          string     `json:"description,omitempty"`
	Organizer            string     `json:"organizer,omitempty"`
	Image                string     `json:"image,omitempty"`
	Capacity             int64      `json:"capacity,omitempty"`
	RegistrationLink     string     `json:"registrationLink,omitempty"`
	RegistrationFee      string     `json:"registrationFee,omitempty"`
	RegistrationDeadline string     `json:"registrationDeadline,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Classify assigns a calendar date to a bucket relative to referenceNow:
// past if the date is strictly earlier than the start of referenceNow's day,
// upcoming otherwise. A date that fails to parse counts as upcoming, matching
// the lenient handling of the admin forms that produce these values.
func Classify(date string, referenceNow time.Time) Bucket {
	d, err := time.ParseInLocation(EventDateLayout, date, referenceNow.Location())
	if err != nil {
		return BucketUpcoming
	}
	if d.Before(StartOfDay(referenceNow)) {
		return BucketPast
	}
	return BucketUpcoming
}

// PlaceOnCreate picks the initial bucket for a newly created event.
func PlaceOnCreate(e Event, now time.Time) Bucket {
	return Classify(e.Date, now)
}

// PlaceOnEdit re-runs classification for an edited event. If the result
// differs from previousBucket the record must be moved between the persisted
// collections, not merely relabeled.
func PlaceOnEdit(e Event, previousBucket Bucket, now time.Time) (Bucket, bool) {
	b := Classify(e.Date, now)
	return b, b != previousBucket
}

// ReclassifyAll scans both partitions and moves every record whose computed
// bucket no longer matches the list it sits in: expired upcoming events move
// to past, and past events whose date was edited forward move back to
// upcoming. Relative order within each list is preserved, with moved records
// appended after the survivors. The returned flag tells the caller whether a
// persistence write is needed; calling twice with the same referenceNow and
// no intervening edits never moves anything the second time.
func ReclassifyAll(past, upcoming []Event, referenceNow time.Time) (newPast, newUpcoming []Event, moved bool) {
	newPast = make([]Event, 0, len(past)+len(upcoming))
	newUpcoming = make([]Event, 0, len(past)+len(upcoming))

	var toPast, toUpcoming []Event

	for _, e := range upcoming {
		if Classify(e.Date, referenceNow) == BucketPast {
			e.Bucket = BucketPast
			toPast = append(toPast, e)
			moved = true
		} else {
			newUpcoming = append(newUpcoming, e)
		}
	}

	for _, e := range past {
		if Classify(e.Date, referenceNow) == BucketUpcoming {
			e.Bucket = BucketUpcoming
			toUpcoming = append(toUpcoming, e)
			moved = true
		} else {
			newPast = append(newPast, e)
		}
	}

	newPast = append(newPast, toPast...)
	newUpcoming = append(newUpcoming, toUpcoming...)
	return newPast, newUpcoming, moved
}
