// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ieeesb/chapter-go/internal/middleware"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// Health handles GET /api/health. Unauthenticated callers get a bare status;
// authenticated admins also see uptime and check latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dbErr := h.db.PingContext(r.Context())
	latency := time.Since(start)

	status := "healthy"
	code := http.StatusOK
	if dbErr != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if middleware.GetSession(r) == nil {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
		return
	}

	resp := map[string]any{
		"status":     status,
		"timestamp":  time.Now().UTC(),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
		"db_latency": latency.String(),
	}
	if dbErr != nil {
		resp["db_error"] = dbErr.Error()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Liveness handles GET /api/health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// Readiness handles GET /api/health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.db.PingContext(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}
