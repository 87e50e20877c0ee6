// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ieeesb/chapter-go/internal/cache"
	"github.com/ieeesb/chapter-go/internal/middleware"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/service"
	"github.com/ieeesb/chapter-go/internal/store"
)

// DashboardHandler serves the admin dashboard routes for one entity kind.
// Society and council dashboards are the same machinery instantiated twice.
type DashboardHandler struct {
	kind      model.EntityKind
	queries   *store.Queries
	events    *service.EventService
	audit     *service.AuditService
	listCache *cache.Directory
}

// NewDashboardHandler creates a dashboard handler for one entity kind.
func NewDashboardHandler(kind model.EntityKind, db *sql.DB, events *service.EventService, audit *service.AuditService, listCache *cache.Directory) *DashboardHandler {
	return &DashboardHandler{
		kind:      kind,
		queries:   store.New(db),
		events:    events,
		audit:     audit,
		listCache: listCache,
	}
}

func (h *DashboardHandler) entityID(r *http.Request) string {
	return chi.URLParam(r, "entityID")
}

func (h *DashboardHandler) logContent(r *http.Request, message string) {
	sess := middleware.GetSession(r)
	var userID *int64
	if sess != nil {
		userID = &sess.UserID
	}
	_ = h.audit.LogContent(r.Context(), model.AuditLevelInfo, message, userID, clientIP(r),
		map[string]any{"entity": h.entityID(r)})
}

// GetEntity handles GET /{entityID} — the admin's own profile view.
func (h *DashboardHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	entity, err := h.queries.GetEntity(r.Context(), h.kind, h.entityID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, string(h.kind)+" not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSONSuccess(w, map[string]any{"data": entity})
}

type entityUpdateRequest struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Vision      string `json:"vision"`
	Mission     string `json:"mission"`
	Objectives  string `json:"objectives"`
	Email       string `json:"email"`
}

// UpdateEntity handles PUT /{entityID}.
func (h *DashboardHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	var req entityUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	entity, err := h.queries.UpdateEntity(r.Context(), h.kind, h.entityID(r), store.UpdateEntityParams{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Vision:      req.Vision,
		Mission:     req.Mission,
		Objectives:  req.Objectives,
		Email:       req.Email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, string(h.kind)+" not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	// The public directory serves cached listings; drop them on any write.
	if err := h.listCache.Invalidate(r.Context()); err != nil {
		slog.Warn("directory cache invalidation failed", "error", err)
	}
	h.logContent(r, "entity profile updated")
	writeJSONSuccess(w, map[string]any{"data": entity})
}

// --- members ---

type memberRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
	LinkedIn  string `json:"linkedin"`
	Bio       string `json:"bio"`
	SortOrder int64  `json:"sort_order"`
}

// ListMembers handles GET /{entityID}/members.
func (h *DashboardHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListMembers(r.Context(), h.kind, h.entityID(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSONSuccess(w, map[string]any{"data": members})
}

// CreateMember handles POST /{entityID}/members.
func (h *DashboardHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Role) == "" {
		writeJSONError(w, http.StatusBadRequest, "name and role are required")
		return
	}

	member, err := h.queries.CreateMember(r.Context(), model.Member{
		EntityKind: h.kind,
		EntityID:   h.entityID(r),
		Name:       req.Name,
		Role:       req.Role,
		Email:      req.Email,
		Phone:      req.Phone,
		Photo:      req.Photo,
		LinkedIn:   req.LinkedIn,
		Bio:        req.Bio,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to add member")
		return
	}

	h.logContent(r, "member added")
	writeJSONStatus(w, http.StatusCreated, map[string]any{"data": member})
}

// UpdateMember handles PUT /{entityID}/members/{memberID}.
func (h *DashboardHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.queries.UpdateMember(r.Context(), model.Member{
		ID:         id,
		EntityKind: h.kind,
		EntityID:   h.entityID(r),
		Name:       req.Name,
		Role:       req.Role,
		Email:      req.Email,
		Phone:      req.Phone,
		Photo:      req.Photo,
		LinkedIn:   req.LinkedIn,
		Bio:        req.Bio,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "member not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	h.logContent(r, "member updated")
	writeJSONSuccess(w, map[string]any{"data": member})
}

// DeleteMember handles DELETE /{entityID}/members/{memberID}.
func (h *DashboardHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.queries.DeleteMember(r.Context(), h.kind, h.entityID(r), id); err != nil {
		writeJSONError(w, http.StatusNotFound, "member not found")
		return
	}

	h.logContent(r, "member removed")
	writeJSONSuccess(w, nil)
}

// --- events ---

type eventRequest struct {
	Title                string `json:"title"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	Venue                string `json:"venue"`
	Description          string `json:"description"`
	Organizer            string `json:"organizer"`
	Image                string `json:"image"`
	Capacity             int64  `json:"capacity"`
	RegistrationLink     string `json:"registrationLink"`
	RegistrationFee      string `json:"registrationFee"`
	RegistrationDeadline string `json:"registrationDeadline"`
}

func (req eventRequest) toEvent() model.Event {
	return model.Event{
		Title:                req.Title,
		Date:                 req.Date,
		Time:                 req.Time,
		Venue:                req.Venue,
		Description:          req.Description,
		Organizer:            req.Organizer,
		Image:                req.Image,
		Capacity:             req.Capacity,
		RegistrationLink:     req.RegistrationLink,
		RegistrationFee:      req.RegistrationFee,
		RegistrationDeadline: req.RegistrationDeadline,
	}
}

// ListEvents handles GET /{entityID}/events/past and .../events/upcoming.
// Loading either list first reconciles both persisted collections against the
// current day, so an expired upcoming event appears under past on the very
// dashboard load that observes the day change.
func (h *DashboardHandler) ListEvents(bucket model.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.events.SyncBuckets(r.Context(), h.kind, h.entityID(r)); err != nil {
			slog.Error("event reclassification failed", "entity", h.entityID(r), "error", err)
			writeJSONError(w, http.StatusInternalServerError, "failed to load events")
			return
		}

		events, err := h.events.List(r.Context(), h.kind, h.entityID(r), bucket)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to load events")
			return
		}
		if events == nil {
			events = []model.Event{}
		}
		writeJSONSuccess(w, map[string]any{"data": events})
	}
}

// CreateEvent handles POST on either event collection. The date decides the
// bucket; the collection POSTed to does not.
func (h *DashboardHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Date) == "" {
		writeJSONError(w, http.StatusBadRequest, "title and date are required")
		return
	}

	e := req.toEvent()
	e.EntityKind = h.kind
	e.EntityID = h.entityID(r)

	created, err := h.events.Create(r.Context(), e)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	h.logEvents(r, "event created")
	writeJSONStatus(w, http.StatusCreated, map[string]any{
		"data":   created,
		"bucket": created.Bucket,
	})
}

// UpdateEvent handles PUT /{entityID}/events/{bucket}/{eventID}. If the new
// date crosses the day boundary the record moves to the other collection.
func (h *DashboardHandler) UpdateEvent(bucket model.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Date) == "" {
			writeJSONError(w, http.StatusBadRequest, "title and date are required")
			return
		}

		updated, err := h.events.Update(r.Context(), h.kind, h.entityID(r), bucket,
			chi.URLParam(r, "eventID"), req.toEvent())
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJSONError(w, http.StatusNotFound, "event not found")
				return
			}
			writeJSONError(w, http.StatusInternalServerError, "failed to update event")
			return
		}

		h.logEvents(r, "event updated")
		writeJSONSuccess(w, map[string]any{
			"data":   updated,
			"bucket": updated.Bucket,
		})
	}
}

// DeleteEvent handles DELETE /{entityID}/events/{bucket}/{eventID}.
func (h *DashboardHandler) DeleteEvent(bucket model.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.events.Delete(r.Context(), h.kind, h.entityID(r), bucket, chi.URLParam(r, "eventID"))
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logEvents(r, "event deleted")
		writeJSONSuccess(w, nil)
	}
}

func (h *DashboardHandler) logEvents(r *http.Request, message string) {
	sess := middleware.GetSession(r)
	var userID *int64
	if sess != nil {
		userID = &sess.UserID
	}
	_ = h.audit.LogEvents(r.Context(), model.AuditLevelInfo, message, userID, clientIP(r),
		map[string]any{"entity": h.entityID(r)})
}

// --- achievements ---

type achievementRequest struct {
	Title       string `json:"title"`
	Year        string `json:"year"`
	Category    string `json:"category"`
	AwardedBy   string `json:"awardedBy"`
	Recipient   string `json:"recipient"`
	Value       string `json:"value"`
	Date        string `json:"date"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// ListAchievements handles GET /{entityID}/achievements.
func (h *DashboardHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.queries.ListAchievements(r.Context(), h.kind, h.entityID(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load achievements")
		return
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	writeJSONSuccess(w, map[string]any{"data": achievements})
}

// CreateAchievement handles POST /{entityID}/achievements.
func (h *DashboardHandler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req achievementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSONError(w, http.StatusBadRequest, "title is required")
		return
	}

	achievement, err := h.queries.CreateAchievement(r.Context(), model.Achievement{
		EntityKind:  h.kind,
		EntityID:    h.entityID(r),
		Title:       req.Title,
		Year:        req.Year,
		Category:    req.Category,
		AwardedBy:   req.AwardedBy,
		Recipient:   req.Recipient,
		Value:       req.Value,
		Date:        req.Date,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to add achievement")
		return
	}

	h.logContent(r, "achievement added")
	writeJSONStatus(w, http.StatusCreated, map[string]any{"data": achievement})
}

// UpdateAchievement handles PUT /{entityID}/achievements/{achievementID}.
func (h *DashboardHandler) UpdateAchievement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "achievementID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid achievement id")
		return
	}

	var req achievementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	achievement, err := h.queries.UpdateAchievement(r.Context(), model.Achievement{
		ID:          id,
		EntityKind:  h.kind,
		EntityID:    h.entityID(r),
		Title:       req.Title,
		Year:        req.Year,
		Category:    req.Category,
		AwardedBy:   req.AwardedBy,
		Recipient:   req.Recipient,
		Value:       req.Value,
		Date:        req.Date,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "achievement not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update achievement")
		return
	}

	h.logContent(r, "achievement updated")
	writeJSONSuccess(w, map[string]any{"data": achievement})
}

// DeleteAchievement handles DELETE /{entityID}/achievements/{achievementID}.
func (h *DashboardHandler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "achievementID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid achievement id")
		return
	}

	if err := h.queries.DeleteAchievement(r.Context(), h.kind, h.entityID(r), id); err != nil {
		writeJSONError(w, http.StatusNotFound, "achievement not found")
		return
	}

	h.logContent(r, "achievement removed")
	writeJSONSuccess(w, nil)
}

// --- gallery ---

type galleryRequest struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ListGallery handles GET /{entityID}/gallery.
func (h *DashboardHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListGalleryItems(r.Context(), h.kind, h.entityID(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load gallery")
		return
	}
	if items == nil {
		items = []model.GalleryItem{}
	}
	writeJSONSuccess(w, map[string]any{"data": items})
}

// CreateGalleryItem handles POST /{entityID}/gallery.
func (h *DashboardHandler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		writeJSONError(w, http.StatusBadRequest, "image is required")
		return
	}

	item, err := h.queries.CreateGalleryItem(r.Context(), model.GalleryItem{
		ID:          uuid.NewString(),
		EntityKind:  h.kind,
		EntityID:    h.entityID(r),
		Title:       req.Title,
		Image:       req.Image,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to add gallery item")
		return
	}

	h.logContent(r, "gallery item added")
	writeJSONStatus(w, http.StatusCreated, map[string]any{"data": item})
}

// DeleteGalleryItem handles DELETE /{entityID}/gallery/{itemID}.
func (h *DashboardHandler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteGalleryItem(r.Context(), h.kind, h.entityID(r), chi.URLParam(r, "itemID")); err != nil {
		writeJSONError(w, http.StatusNotFound, "gallery item not found")
		return
	}
	h.logContent(r, "gallery item removed")
	writeJSONSuccess(w, nil)
}
