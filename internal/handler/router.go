// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ieeesb/chapter-go/internal/cache"
	"github.com/ieeesb/chapter-go/internal/middleware"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/session"
)

// RouterConfig carries the wiring for NewRouter.
type RouterConfig struct {
	DB            *sql.DB
	Gate          *session.Gate
	Events        *service.EventService
	Audit         *service.AuditService
	Cache         cache.Cache
	IsDevelopment bool
	CORSOrigins   []string
}

// NewRouter builds the full API router.
func NewRouter(cfg RouterConfig) http.Handler {
	directoryCache := cache.NewDirectory(cfg.Cache, 5*time.Minute)

	loginProtection := middleware.NewLoginProtection(0, 0, 0, 0, 0)
	auth := NewAuthHandler(cfg.Gate, cfg.Audit, loginProtection)
	directory := NewDirectoryHandler(cfg.DB, directoryCache)
	societies := NewDashboardHandler(model.KindSociety, cfg.DB, cfg.Events, cfg.Audit, directoryCache)
	councils := NewDashboardHandler(model.KindCouncil, cfg.DB, cfg.Events, cfg.Audit, directoryCache)
	health := NewHealthHandler(cfg.DB)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	apiRateLimiter := middleware.NewGlobalRateLimiter(100, 200)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiRateLimiter.Middleware())

		r.Route("/health", func(r chi.Router) {
			r.Use(middleware.OptionalBearerAuth(cfg.Gate))
			r.Get("/", health.Health)
			r.Get("/live", health.Liveness)
			r.Get("/ready", health.Readiness)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginProtection.Middleware()).Post("/login", auth.Login)
			r.With(middleware.OptionalBearerAuth(cfg.Gate)).Post("/logout", auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.BearerAuth(cfg.Gate))
				r.Get("/verify", auth.Verify)
				r.Get("/profile", auth.Profile)
				r.Post("/change-password", auth.ChangePassword)
			})
		})

		r.Route("/societies", func(r chi.Router) {
			r.Get("/", directory.List(model.KindSociety))
			r.Get("/name/{slug}", directory.GetByName(model.KindSociety))
			r.Get("/{entityID}", directory.Get(model.KindSociety))
		})
		r.Route("/councils", func(r chi.Router) {
			r.Get("/", directory.List(model.KindCouncil))
			r.Get("/name/{slug}", directory.GetByName(model.KindCouncil))
			r.Get("/{entityID}", directory.Get(model.KindCouncil))
		})

		r.Route("/society-dashboard/society/{entityID}", func(r chi.Router) {
			r.Use(middleware.BearerAuth(cfg.Gate))
			r.Use(middleware.RequireEntityAdmin(model.KindSociety))
			mountDashboard(r, societies)
		})
		r.Route("/council-dashboard/council/{entityID}", func(r chi.Router) {
			r.Use(middleware.BearerAuth(cfg.Gate))
			r.Use(middleware.RequireEntityAdmin(model.KindCouncil))
			mountDashboard(r, councils)
		})
	})

	return r
}

// mountDashboard registers the per-entity admin routes. Both event
// collections accept POST; the event date, not the collection, decides where
// the record lands.
func mountDashboard(r chi.Router, h *DashboardHandler) {
	r.Get("/", h.GetEntity)
	r.Put("/", h.UpdateEntity)

	r.Get("/members", h.ListMembers)
	r.Post("/members", h.CreateMember)
	r.Put("/members/{memberID}", h.UpdateMember)
	r.Delete("/members/{memberID}", h.DeleteMember)

	for _, bucket := range []model.Bucket{model.BucketPast, model.BucketUpcoming} {
		r.Route("/events/"+string(bucket), func(r chi.Router) {
			r.Get("/", h.ListEvents(bucket))
			r.Post("/", h.CreateEvent)
			r.Put("/{eventID}", h.UpdateEvent(bucket))
			r.Delete("/{eventID}", h.DeleteEvent(bucket))
		})
	}

	r.Get("/achievements", h.ListAchievements)
	r.Post("/achievements", h.CreateAchievement)
	r.Put("/achievements/{achievementID}", h.UpdateAchievement)
	r.Delete("/achievements/{achievementID}", h.DeleteAchievement)

	r.Get("/gallery", h.ListGallery)
	r.Post("/gallery", h.CreateGalleryItem)
	r.Delete("/gallery/{itemID}", h.DeleteGalleryItem)
}
