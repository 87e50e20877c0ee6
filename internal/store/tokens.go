// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ieeesb/chapter-go/internal/model"
)

// CreateAuthTokenParams holds the fields for CreateAuthToken.
type CreateAuthTokenParams struct {
	TokenHash string
	UserID    int64
	ExpiresAt time.Time
}

// CreateAuthToken persists the hash of a freshly issued bearer token.
func (q *Queries) CreateAuthToken(ctx context.Context, arg CreateAuthTokenParams) (model.AuthToken, error) {
	var t model.AuthToken
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO auth_tokens (token_hash, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, token_hash, user_id, created_at, expires_at, last_used_at`,
		arg.TokenHash, arg.UserID, time.Now(), arg.ExpiresAt)
	err := row.Scan(&t.ID, &t.TokenHash, &t.UserID, &t.CreatedAt, &t.ExpiresAt, &t.LastUsedAt)
	return t, err
}

// GetAuthTokenByHash looks up a token row by its SHA-256 hash.
func (q *Queries) GetAuthTokenByHash(ctx context.Context, tokenHash string) (model.AuthToken, error) {
	var t model.AuthToken
	row := q.db.QueryRowContext(ctx, `
		SELECT id, token_hash, user_id, created_at, expires_at, last_used_at
		FROM auth_tokens WHERE token_hash = ?`, tokenHash)
	err := row.Scan(&t.ID, &t.TokenHash, &t.UserID, &t.CreatedAt, &t.ExpiresAt, &t.LastUsedAt)
	return t, err
}

// DeleteAuthToken revokes a single token by hash. Deleting a token that does
// not exist is not an error.
func (q *Queries) DeleteAuthToken(ctx context.Context, tokenHash string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token_hash = ?`, tokenHash)
	return err
}

// DeleteAuthTokensForUser revokes every token belonging to a user.
func (q *Queries) DeleteAuthTokensForUser(ctx context.Context, userID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID)
	return err
}

// DeleteExpiredAuthTokens purges tokens past their expiry. Returns the number
// of rows removed.
func (q *Queries) DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateAuthTokenLastUsed stamps the token's last use.
func (q *Queries) UpdateAuthTokenLastUsed(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE auth_tokens SET last_used_at = ? WHERE id = ?`,
		sql.NullTime{Time: at, Valid: true}, id)
	return err
}
