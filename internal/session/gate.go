// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ieeesb/chapter-go/internal/auth"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/store"
)

// Sentinel errors surfaced by the gate. Handlers map each to a user-facing
// message; no structured error codes leave the API.
var (
	// ErrCredentialsRequired is returned before any database access when
	// email or password is empty.
	ErrCredentialsRequired = errors.New("email and password are required")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers missing, unknown, and expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// DefaultTokenTTL is how long an issued bearer token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Gate owns login, logout, and token resolution. It is constructed once and
// injected into handlers and middleware; nothing else writes session state.
type Gate struct {
	queries  *store.Queries
	tokenTTL time.Duration
}

// NewGate creates a Gate over the given database.
func NewGate(db *sql.DB, tokenTTL time.Duration) *Gate {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Gate{
		queries:  store.New(db),
		tokenTTL: tokenTTL,
	}
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token      string
	Session    Session
	RedirectTo string
}

// Login verifies a credential pair and issues a fresh bearer token. Empty
// email or password fails fast with ErrCredentialsRequired before any
// database access.
func (g *Gate) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, ErrCredentialsRequired
	}

	user, err := g.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for unknown user", "email", email)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("looking up user: %w", err)
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Transparently upgrade hashes created with older parameters.
	if auth.NeedsRehash(user.PasswordHash) {
		if rehash, err := auth.HashPassword(password); err == nil {
			_ = g.queries.UpdateUserPassword(ctx, user.ID, rehash)
		}
	}

	rawToken, err := model.GenerateAuthToken()
	if err != nil {
		return LoginResult{}, fmt.Errorf("generating token: %w", err)
	}
	if _, err := g.queries.CreateAuthToken(ctx, store.CreateAuthTokenParams{
		TokenHash: model.HashAuthToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(g.tokenTTL),
	}); err != nil {
		return LoginResult{}, fmt.Errorf("persisting token: %w", err)
	}

	_ = g.queries.UpdateUserLastLogin(ctx, user.ID, time.Now())

	return LoginResult{
		Token:      rawToken,
		Session:    sessionFromUser(rawToken, user),
		RedirectTo: DashboardRoute(user.Role, user.EntityID),
	}, nil
}

// Logout revokes the given token. The returned error is for logging only:
// by the time Logout returns, the caller must consider the session cleared
// regardless, so a failed backend call never leaves the client believing it
// is still authenticated.
func (g *Gate) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	if err := g.queries.DeleteAuthToken(ctx, model.HashAuthToken(rawToken)); err != nil {
		slog.Warn("logout token revocation failed", "error", err)
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// Resolve turns a persisted bearer token back into a Session. Any failure —
// unknown token, expired token, storage error — yields ErrInvalidToken so
// callers fall back to the logged-out state without distinguishing causes.
// Expired tokens are discarded on sight.
func (g *Gate) Resolve(ctx context.Context, rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	hash := model.HashAuthToken(rawToken)
	tok, err := g.queries.GetAuthTokenByHash(ctx, hash)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("token lookup failed", "error", err)
		}
		return nil, ErrInvalidToken
	}

	now := time.Now()
	if tok.IsExpired(now) {
		_ = g.queries.DeleteAuthToken(ctx, hash)
		return nil, ErrInvalidToken
	}

	user, err := g.queries.GetUserByID(ctx, tok.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	_ = g.queries.UpdateAuthTokenLastUsed(ctx, tok.ID, now)

	sess := sessionFromUser(rawToken, user)
	return &sess, nil
}

// ChangePassword verifies the old password and replaces it, revoking every
// other token the user holds so stolen credentials cannot outlive the change.
func (g *Gate) ChangePassword(ctx context.Context, sess *Session, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrCredentialsRequired
	}

	user, err := g.queries.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}

	valid, err := auth.CheckPassword(oldPassword, user.PasswordHash)
	if err != nil || !valid {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := g.queries.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	if err := g.queries.DeleteAuthTokensForUser(ctx, user.ID); err != nil {
		slog.Warn("revoking tokens after password change failed", "error", err, "user_id", user.ID)
	}
	return nil
}

func sessionFromUser(rawToken string, user model.User) Session {
	return Session{
		Token:      rawToken,
		UserID:     user.ID,
		Role:       user.Role,
		EntityKind: user.EntityKind,
		EntityID:   user.EntityID,
		Name:       user.Name,
		Email:      user.Email,
	}
}
