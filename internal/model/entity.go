// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Entity is a society or council record administered by exactly one admin
// account. The ID doubles as the URL slug (e.g. "ieee-hkn-society").
type Entity struct {
	ID          string     `json:"id"`
	Kind        EntityKind `json:"type"`
	Name        string     `json:"name"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	Vision      string     `json:"vision,omitempty"`
	Mission     string     `json:"mission,omitempty"`
	Objectives  string     `json:"objectives,omitempty"`
	Email       string     `json:"email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EntityStats carries the derived counters shown on directory cards.
type EntityStats struct {
	Members int64 `json:"members"`
	Events  int64 `json:"events"`
	Awards  int64 `json:"awards"`
}

// Member is a slate member (Chair, Secretary, ...) of an entity.
type Member struct {
	ID         int64      `json:"id"`
	EntityKind EntityKind `json:"-"`
	EntityID   string     `json:"-"`
	Name       string     `json:"name"`
	Role       string     `json:"role"` // position title, not an auth role
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Photo      string     `json:"photo,omitempty"`
	LinkedIn   string     `json:"linkedin,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	SortOrder  int64      `json:"sort_order"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Achievement is an award or recognition belonging to an entity.
type Achievement struct {
	ID          int64      `json:"id"`
	EntityKind  EntityKind `json:"-"`
	EntityID    string     `json:"-"`
	Title       string     `json:"title"`
	Year        string     `json:"year,omitempty"`
	Category    string     `json:"category,omitempty"`
	AwardedBy   string     `json:"awardedBy,omitempty"`
	Recipient   string     `json:"recipient,omitempty"`
	Value       string     `json:"value,omitempty"`
	Date        string     `json:"date,omitempty"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GalleryItem is a single captioned image in an entity's gallery.
type GalleryItem struct {
	ID          string     `json:"id"`
	EntityKind  EntityKind `json:"-"`
	EntityID    string     `json:"-"`
	Title       string     `json:"title,omitempty"`
	Image       string     `json:"image"`
	Date        string     `json:"date,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
