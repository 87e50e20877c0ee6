// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ieeesb/chapter-go/internal/cache"
	"github.com/ieeesb/chapter-go/internal/model"
	"github.com/ieeesb/chapter-go/internal/render"
	"github.com/ieeesb/chapter-go/internal/store"
	"github.com/ieeesb/chapter-go/internal/util"
)

// DirectoryHandler serves the public society and council directory.
type DirectoryHandler struct {
	queries   *store.Queries
	listCache *cache.Directory
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(db *sql.DB, listCache *cache.Directory) *DirectoryHandler {
	return &DirectoryHandler{
		queries:   store.New(db),
		listCache: listCache,
	}
}

// List handles GET /api/societies and GET /api/councils.
func (h *DirectoryHandler) List(kind model.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if entities, err := h.listCache.GetList(r.Context(), kind); err == nil {
			writeJSONSuccess(w, map[string]any{"data": entities})
			return
		}

		entities, err := h.queries.ListEntities(r.Context(), kind)
		if err != nil {
			slog.Error("listing entities failed", "kind", kind, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "failed to load directory")
			return
		}
		if entities == nil {
			entities = []model.Entity{}
		}

		if err := h.listCache.SetList(r.Context(), kind, entities); err != nil {
			slog.Warn("caching directory listing failed", "kind", kind, "error", err)
		}
		writeJSONSuccess(w, map[string]any{"data": entities})
	}
}

// Get handles GET /api/societies/{entityID} and the council mirror. The
// response includes derived stats and the profile markdown rendered to
// sanitized HTML.
func (h *DirectoryHandler) Get(kind model.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "entityID")

		entity, err := h.queries.GetEntity(r.Context(), kind, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJSONError(w, http.StatusNotFound, string(kind)+" not found")
				return
			}
			slog.Error("loading entity failed", "kind", kind, "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "failed to load "+string(kind))
			return
		}

		h.writeEntityDetail(w, r, entity)
	}
}

// GetByName handles GET /api/societies/name/{slug} and the council mirror:
// lookup by slugified display name for clients that only know the name.
func (h *DirectoryHandler) GetByName(kind model.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !util.IsValidSlug(slug) {
			writeJSONError(w, http.StatusBadRequest, "invalid name")
			return
		}

		entities, err := h.queries.ListEntities(r.Context(), kind)
		if err != nil {
			slog.Error("listing entities failed", "kind", kind, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "failed to load "+string(kind))
			return
		}

		for _, entity := range entities {
			if entity.ID == slug || util.Slugify(entity.Name) == slug {
				h.writeEntityDetail(w, r, entity)
				return
			}
		}
		writeJSONError(w, http.StatusNotFound, string(kind)+" not found")
	}
}

func (h *DirectoryHandler) writeEntityDetail(w http.ResponseWriter, r *http.Request, entity model.Entity) {
	stats, err := h.queries.GetEntityStats(r.Context(), entity.Kind, entity.ID)
	if err != nil {
		slog.Error("loading entity stats failed", "id", entity.ID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load "+string(entity.Kind))
		return
	}

	writeJSONSuccess(w, map[string]any{
		"data":            entity,
		"stats":           stats,
		"descriptionHtml": render.Markdown(entity.Description),
	})
}
