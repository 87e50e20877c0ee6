// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting, and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/session"
)

// ContextKey is the type for context keys set by this package.
type ContextKey string

// ContextKeySession is the context key for the resolved session.
const ContextKeySession ContextKey = "session"

// ErrorResponse is the JSON error envelope returned by every API error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	// RedirectTo tells the client where the authorization gate wants it to
	// go: the login page or the unauthorized page.
	RedirectTo string `json:"redirectTo,omitempty"`
	// ReturnTo echoes the originally requested path on login redirects so
	// the client can come back after authenticating.
	ReturnTo string `json:"returnTo,omitempty"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteErrorRedirect(w, statusCode, message, "", "")
}

// WriteErrorRedirect writes a JSON error response carrying a redirect hint.
func WriteErrorRedirect(w http.ResponseWriter, statusCode int, message, redirectTo, returnTo string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:      message,
		RedirectTo: redirectTo,
		ReturnTo:   returnTo,
	})
}

// bearerToken extracts the raw token from the Authorization header. Returns
// an empty string if the header is missing or not a Bearer credential.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// BearerAuth creates middleware that requires a valid bearer token and puts
// the resolved session into the request context. Requests without a valid
// token get a login redirect carrying the requested path.
func BearerAuth(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := gate.Resolve(r.Context(), bearerToken(r))
			if err != nil {
				d := session.Authorize(nil, false, session.Requirement{}, r.URL.Path)
				WriteErrorRedirect(w, http.StatusUnauthorized, "authentication required", d.RedirectTo, d.ReturnTo)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalBearerAuth resolves a bearer token if one is present but never
// rejects the request. An invalid token reads as logged out.
func OptionalBearerAuth(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, err := gate.Resolve(r.Context(), bearerToken(r)); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeySession, sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession retrieves the session from the request context. Returns nil for
// unauthenticated requests.
func GetSession(r *http.Request) *session.Session {
	sess, ok := r.Context().Value(ContextKeySession).(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireEntityAdmin creates middleware that enforces the dashboard access
// rules for one entity kind: the session must hold the matching admin role
// and administer exactly the entity named in the route. Must run after
// BearerAuth.
func RequireEntityAdmin(kind model.EntityKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r)
			req := session.Requirement{
				Kind:     kind,
				EntityID: chi.URLParam(r, "entityID"),
			}

			d := session.Authorize(sess, false, req, r.URL.Path)
			if d.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			if d.RedirectTo == session.RouteLogin {
				WriteErrorRedirect(w, http.StatusUnauthorized, "authentication required", d.RedirectTo, d.ReturnTo)
				return
			}
			WriteErrorRedirect(w, http.StatusForbidden, "access denied", d.RedirectTo, "")
		})
	}
}
