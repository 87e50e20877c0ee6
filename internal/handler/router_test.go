// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ieeesb/chapter-go/internal/cache"
	"github.com/ieeesb/chapter-go/internal/middleware"
	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/session"
	"github.com/ieeesb/chapter-go/internal/store"
)

// testRouter builds the full API router over a seeded in-memory database.
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	if err := store.Seed(context.Background(), db); err != nil {
		t.Fatalf("seeding test database: %v", err)
	}

	c := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	return NewRouter(RouterConfig{
		DB:            db,
		Gate:          session.NewGate(db, time.Hour),
		Events:        service.NewEventService(db),
		Audit:         service.NewAuditService(db),
		Cache:         c,
		IsDevelopment: true,
		CORSOrigins:   []string{"*"},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: decoding response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", rec.Code, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestLoginFlow(t *testing.T) {
	router := testRouter(t)

	// Empty credentials: 400 before any lookup
	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty login status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("empty login body = %v", body)
	}

	// Wrong password: 401
	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "hkn.admin@ieee.example.edu", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	// Success: token, user payload, role-appropriate dashboard redirect
	rec, body = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "hkn.admin@ieee.example.edu", "password": store.SeedAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", rec.Code, body)
	}
	if body["redirectTo"] != "/societies/ieee-hkn-society/dashboard" {
		t.Errorf("redirectTo = %v", body["redirectTo"])
	}
	user, _ := body["user"].(map[string]any)
	if user["role"] != "SOCIETY_ADMIN" || user["entityId"] != "ieee-hkn-society" {
		t.Errorf("user = %v", user)
	}

	// Verify works with the token, fails after logout
	token := body["token"].(string)
	rec, _ = doJSON(t, router, http.MethodGet, "/api/auth/verify", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("verify status = %d, want 200", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("logout status = %d, want 200", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodGet, "/api/auth/verify", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("verify after logout status = %d, want 401", rec.Code)
	}
}

func TestPublicDirectory(t *testing.T) {
	router := testRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/societies", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list societies status = %d", rec.Code)
	}
	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Errorf("societies = %d, want 2", len(data))
	}

	// Cached second read returns the same payload
	rec2, body2 := doJSON(t, router, http.MethodGet, "/api/societies", "", nil)
	if rec2.Code != http.StatusOK || len(body2["data"].([]any)) != 2 {
		t.Errorf("cached list status = %d, body = %v", rec2.Code, body2)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/societies/ieee-hkn-society", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get society status = %d", rec.Code)
	}
	stats, _ := body["stats"].(map[string]any)
	if stats["members"] != float64(2) || stats["events"] != float64(3) {
		t.Errorf("stats = %v", stats)
	}

	// Slug lookup by display name
	rec, body = doJSON(t, router, http.MethodGet, "/api/societies/name/ieee-hkn-society", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("slug lookup status = %d, body = %v", rec.Code, body)
	}

	// Councils are not reachable through the society directory
	rec, _ = doJSON(t, router, http.MethodGet, "/api/societies/ieee-student-council", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("council via society route status = %d, want 404", rec.Code)
	}
}

func TestDashboardAccessControl(t *testing.T) {
	router := testRouter(t)
	societyToken := login(t, router, "hkn.admin@ieee.example.edu", store.SeedAdminPassword)

	// Own dashboard: allowed
	rec, _ := doJSON(t, router, http.MethodGet, "/api/society-dashboard/society/ieee-hkn-society/members", societyToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("own dashboard status = %d, want 200", rec.Code)
	}

	// Another society: 403 with unauthorized redirect
	rec, body := doJSON(t, router, http.MethodGet, "/api/society-dashboard/society/ieee-circuits-and-systems-society/members", societyToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("other society status = %d, want 403", rec.Code)
	}
	if body["redirectTo"] != "/unauthorized" {
		t.Errorf("other society redirectTo = %v", body["redirectTo"])
	}

	// Council dashboard with a society token: 403
	rec, _ = doJSON(t, router, http.MethodGet, "/api/council-dashboard/council/ieee-student-council/members", societyToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("council route status = %d, want 403", rec.Code)
	}

	// Anonymous: 401 with login redirect carrying the requested path
	rec, body = doJSON(t, router, http.MethodGet, "/api/society-dashboard/society/ieee-hkn-society/members", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}
	if body["redirectTo"] != "/login" {
		t.Errorf("anonymous redirectTo = %v", body["redirectTo"])
	}
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	router := testRouter(t)
	token := login(t, router, "council.admin@ieee.example.edu", store.SeedAdminPassword)
	base := "/api/council-dashboard/council/ieee-student-council"

	// POSTing a dated-in-the-past event to the upcoming collection still
	// lands it in past: the date decides, not the URL.
	rec, body := doJSON(t, router, http.MethodPost, base+"/events/upcoming", token, map[string]any{
		"title": "Orientation 2024",
		"date":  "2024-02-10",
		"venue": "Main Auditorium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %v", rec.Code, body)
	}
	if body["bucket"] != "past" {
		t.Errorf("bucket = %v, want past", body["bucket"])
	}
	created, _ := body["data"].(map[string]any)
	eventID, _ := created["id"].(string)
	if eventID == "" {
		t.Fatal("created event has no id")
	}

	// It shows up in the past listing
	rec, body = doJSON(t, router, http.MethodGet, base+"/events/past", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list past status = %d", rec.Code)
	}
	past, _ := body["data"].([]any)
	found := false
	for _, e := range past {
		if e.(map[string]any)["id"] == eventID {
			found = true
		}
	}
	if !found {
		t.Error("created event missing from past listing")
	}

	// Editing its date into the future moves it to upcoming
	rec, body = doJSON(t, router, http.MethodPut, base+"/events/past/"+eventID, token, map[string]any{
		"title": "Orientation 2030",
		"date":  "2030-02-10",
		"venue": "Main Auditorium",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %v", rec.Code, body)
	}
	if body["bucket"] != "upcoming" {
		t.Errorf("bucket after edit = %v, want upcoming", body["bucket"])
	}

	// Gone from past, deletable from upcoming
	rec, _ = doJSON(t, router, http.MethodPut, base+"/events/past/"+eventID, token, map[string]any{
		"title": "x", "date": "2030-02-10",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update via old bucket status = %d, want 404", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodDelete, base+"/events/upcoming/"+eventID, token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rec.Code)
	}
}

func TestDashboardContentCRUD(t *testing.T) {
	router := testRouter(t)
	token := login(t, router, "cas.admin@ieee.example.edu", store.SeedAdminPassword)
	base := "/api/society-dashboard/society/ieee-circuits-and-systems-society"

	// Member create requires name and role
	rec, _ := doJSON(t, router, http.MethodPost, base+"/members", token, map[string]any{"name": "No Role"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("member without role status = %d, want 400", rec.Code)
	}

	rec, body := doJSON(t, router, http.MethodPost, base+"/members", token, map[string]any{
		"name": "Mx. Jordan Lee", "role": "Treasurer", "sort_order": 3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create member status = %d, body = %v", rec.Code, body)
	}
	memberID := body["data"].(map[string]any)["id"].(float64)

	rec, body = doJSON(t, router, http.MethodPut, base+"/members/"+jsonID(memberID), token, map[string]any{
		"name": "Mx. Jordan Lee", "role": "Secretary",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update member status = %d, body = %v", rec.Code, body)
	}
	if body["data"].(map[string]any)["role"] != "Secretary" {
		t.Errorf("updated member = %v", body["data"])
	}

	rec, _ = doJSON(t, router, http.MethodDelete, base+"/members/"+jsonID(memberID), token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete member status = %d, want 200", rec.Code)
	}

	// Achievements
	rec, body = doJSON(t, router, http.MethodPost, base+"/achievements", token, map[string]any{
		"title": "Best Chapter Award", "year": "2026", "awardedBy": "IEEE Region 10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create achievement status = %d, body = %v", rec.Code, body)
	}

	// Gallery requires an image
	rec, _ = doJSON(t, router, http.MethodPost, base+"/gallery", token, map[string]any{"title": "no image"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("gallery without image status = %d, want 400", rec.Code)
	}
	rec, body = doJSON(t, router, http.MethodPost, base+"/gallery", token, map[string]any{
		"image": "https://example.edu/photos/workshop.jpg", "title": "Workshop",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create gallery item status = %d, body = %v", rec.Code, body)
	}
	itemID := body["data"].(map[string]any)["id"].(string)
	rec, _ = doJSON(t, router, http.MethodDelete, base+"/gallery/"+itemID, token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete gallery item status = %d, want 200", rec.Code)
	}

	// Entity profile update invalidates the cached directory
	rec, _ = doJSON(t, router, http.MethodGet, "/api/societies", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("prime directory cache status = %d", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodPut, base, token, map[string]any{
		"name": "IEEE Circuits and Systems Society", "description": "Updated profile.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update entity status = %d", rec.Code)
	}
	rec, body = doJSON(t, router, http.MethodGet, base, token, nil)
	if rec.Code != http.StatusOK || body["data"].(map[string]any)["description"] != "Updated profile." {
		t.Errorf("profile after update = %v", body["data"])
	}
}

func TestLogoutSucceedsWhenRevocationFails(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	_ = db.Close()

	// Every store call through this gate fails, yet the client must still
	// end up logged out.
	auth := NewAuthHandler(session.NewGate(db, time.Hour), service.NewAuditService(db), nil)

	sess := &session.Session{Token: "some-opaque-token", UserID: 1, Role: "SOCIETY_ADMIN"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeySession, sess))

	rec := httptest.NewRecorder()
	auth.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("logout status = %d, want 200 despite revocation failure", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["success"] != true {
		t.Errorf("logout body = %v", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "healthy" {
		t.Errorf("health body = %v", body)
	}
	if _, leaked := body["uptime"]; leaked {
		t.Error("unauthenticated health response leaks details")
	}

	for _, path := range []string{"/api/health/live", "/api/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

// jsonID formats a JSON-decoded numeric id for use in a URL.
func jsonID(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
