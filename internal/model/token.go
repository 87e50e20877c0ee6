// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"time"
)

// AuthToken represents a persisted bearer credential. Only the SHA-256 hash
// of the opaque token is stored; the raw token is returned to the client once
// at login and never again.
type AuthToken struct {
	ID         int64        `json:"id"`
	TokenHash  string       `json:"-"`
	UserID     int64        `json:"user_id"`
	CreatedAt  time.Time    `json:"created_at"`
	ExpiresAt  time.Time    `json:"expires_at"`
	LastUsedAt sql.NullTime `json:"last_used_at,omitempty"`
}

// IsExpired checks whether the token has passed its expiry.
func (t *AuthToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// GenerateAuthToken generates a new random opaque bearer token.
// Returns the raw token to hand to the client.
func GenerateAuthToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// HashAuthToken creates a SHA-256 hash of the raw token for storage and lookup.
func HashAuthToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
