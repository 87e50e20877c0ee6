// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session owns the authenticated identity for a client session and
// the role+entity authorization decision table that gates dashboard routes.
package session

import (
	"github.com/ieeesb/chapter-go/internal/model"
)

// Well-known client routes the gate redirects to.
const (
	RouteLogin        = "/login"
	RouteUnauthorized = "/unauthorized"
)

// Session is the resolved identity behind a bearer token. A nil *Session
// means unauthenticated.
type Session struct {
	Token      string
	UserID     int64
	Role       string
	EntityKind model.EntityKind
	EntityID   string
	Name       string
	Email      string
}

// DecisionKind is the outcome class of an authorization check.
type DecisionKind int

// Decision outcomes.
const (
	// DecisionPending means session resolution is still in flight and no
	// decision can be made yet.
	DecisionPending DecisionKind = iota
	DecisionAllow
	DecisionRedirect
)

// Decision is the result of evaluating the authorization table for a route.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
	// ReturnTo remembers the originally requested location when redirecting
	// to the login page, so a successful login can come back to it.
	ReturnTo string
}

// Allowed is a convenience check for Kind == DecisionAllow.
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Requirement describes what a protected route demands. The zero value
// requires only authentication.
type Requirement struct {
	// Kind, when set, requires the matching admin role.
	Kind model.EntityKind
	// EntityID, when set, additionally requires the session to administer
	// exactly this entity.
	EntityID string
}

// Authorize evaluates the route-protection decision table, in order:
// pending resolution, unauthenticated, no requirement, wrong role, wrong
// entity, allow. requestedPath is remembered for post-login return when the
// outcome is a login redirect.
func Authorize(sess *Session, resolving bool, req Requirement, requestedPath string) Decision {
	if resolving {
		return Decision{Kind: DecisionPending}
	}

	if sess == nil {
		return Decision{Kind: DecisionRedirect, RedirectTo: RouteLogin, ReturnTo: requestedPath}
	}

	if req.Kind == "" {
		return Decision{Kind: DecisionAllow}
	}

	if sess.Role != req.Kind.AdminRole() {
		return Decision{Kind: DecisionRedirect, RedirectTo: RouteUnauthorized}
	}

	// An admin may only manage their own entity, never another's, even one
	// of the same kind. A session without an entity matches nothing.
	if req.EntityID != "" && sess.EntityID != req.EntityID {
		return Decision{Kind: DecisionRedirect, RedirectTo: RouteUnauthorized}
	}

	return Decision{Kind: DecisionAllow}
}

// DashboardRoute computes the role-appropriate landing route after login.
func DashboardRoute(role string, entityID string) string {
	switch {
	case role == model.RoleSocietyAdmin && entityID != "":
		return "/societies/" + entityID + "/dashboard"
	case role == model.RoleCouncilAdmin && entityID != "":
		return "/councils/" + entityID + "/dashboard"
	default:
		return RouteUnauthorized
	}
}
