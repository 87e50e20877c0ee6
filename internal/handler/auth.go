// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the chapter API.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ieeesb/chapter-go/internal/metrics"
	"github.com/ieeesb/chapter-go/internal/middleware"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/session"
)

// AuthHandler handles login, logout, and session introspection.
type AuthHandler struct {
	gate       *session.Gate
	audit      *service.AuditService
	protection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *session.Gate, audit *service.AuditService, protection *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		gate:       gate,
		audit:      audit,
		protection: protection,
	}
}

// userPayload is the user object embedded in auth responses.
func userPayload(sess session.Session) map[string]any {
	return map[string]any{
		"id":       sess.UserID,
		"role":     sess.Role,
		"entityId": sess.EntityID,
		"name":     sess.Name,
		"email":    sess.Email,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.protection != nil && req.Email != "" {
		if locked, remaining := h.protection.IsAccountLocked(req.Email); locked {
			metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
			writeJSONError(w, http.StatusTooManyRequests,
				fmt.Sprintf("account temporarily locked, try again in %s", remaining.Round(time.Second)))
			return
		}
	}

	res, err := h.gate.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, session.ErrCredentialsRequired):
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, session.ErrInvalidCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		if h.protection != nil {
			h.protection.RecordFailedAttempt(req.Email)
		}
		_ = h.audit.LogAuth(r.Context(), model.AuditLevelWarning, "failed login attempt",
			nil, clientIP(r), map[string]any{"email": req.Email})
		writeJSONError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		writeJSONError(w, http.StatusInternalServerError, "login failed, please try again")
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(req.Email)
	}
	_ = h.audit.LogAuth(r.Context(), model.AuditLevelInfo, "user logged in",
		&res.Session.UserID, clientIP(r), map[string]any{"email": req.Email})

	writeJSONSuccess(w, map[string]any{
		"token":      res.Token,
		"user":       userPayload(res.Session),
		"redirectTo": res.RedirectTo,
	})
}

// Logout handles POST /api/auth/logout. The response is 200 even when token
// revocation fails so the client always ends up logged out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)

	var token string
	var userID *int64
	if sess != nil {
		token = sess.Token
		userID = &sess.UserID
	}

	if err := h.gate.Logout(r.Context(), token); err == nil && sess != nil {
		_ = h.audit.LogAuth(r.Context(), model.AuditLevelInfo, "user logged out",
			userID, clientIP(r), nil)
	}

	writeJSONSuccess(w, nil)
}

// Verify handles GET /api/auth/verify. Reaching here means BearerAuth
// already accepted the token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)
	writeJSONSuccess(w, map[string]any{
		"user": userPayload(*sess),
	})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)
	writeJSONSuccess(w, userPayload(*sess))
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword handles POST /api/auth/change-password. On success every
// existing token is revoked, including the one used for this request.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.gate.ChangePassword(r.Context(), sess, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, session.ErrCredentialsRequired):
		writeJSONError(w, http.StatusBadRequest, "old and new passwords are required")
		return
	case errors.Is(err, session.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	case err != nil:
		writeJSONError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	_ = h.audit.LogAuth(r.Context(), model.AuditLevelInfo, "password changed",
		&sess.UserID, clientIP(r), nil)
	writeJSONSuccess(w, nil)
}

// clientIP extracts the client IP, preferring reverse proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
