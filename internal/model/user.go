// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including User, Entity, Event, and the past/upcoming bucket classifier.
package model

import (
	"database/sql"
	"time"
)

// Admin roles. Each admin account administers exactly one entity.
const (
	RoleSocietyAdmin = "SOCIETY_ADMIN"
	RoleCouncilAdmin = "COUNCIL_ADMIN"
)

// EntityKind identifies which directory an entity belongs to.
type EntityKind string

// Entity kinds.
const (
	KindSociety EntityKind = "society"
	KindCouncil EntityKind = "council"
)

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	return k == KindSociety || k == KindCouncil
}

// AdminRole returns the role required to administer entities of this kind.
func (k EntityKind) AdminRole() string {
	if k == KindCouncil {
		return RoleCouncilAdmin
	}
	return RoleSocietyAdmin
}

// User represents an admin account.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	EntityKind   EntityKind   `json:"entityKind"`
	EntityID     string       `json:"entityId"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}
