// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chronicle/internal/models"
	"chronicle/internal/store"
)

// Collections groups the section-collection handlers.
type Collections struct {
	collections *store.CollectionStore
	sections    *store.SectionStore
}

// NewCollections creates the collection handler group.
func NewCollections(collections *store.CollectionStore, sections *store.SectionStore) *Collections {
	return &Collections{collections: collections, sections: sections}
}

// ListByManuscript handles GET /api/manuscripts/{id}/collections.
func (h *Collections) ListByManuscript(w http.ResponseWriter, r *http.Request) {
	manuscriptID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}
	collections, err := h.collections.ListByManuscript(manuscriptID)
	if err != nil {
		slog.Error("list collections", "manuscript", manuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list collections")
		return
	}
	if collections == nil {
		collections = []models.Collection{}
	}
	respondJSON(w, http.StatusOK, collections)
}

type createCollectionRequest struct {
	ManuscriptID      uuid.UUID `json:"manuscriptId"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Color             string    `json:"color"`
	IsSmartCollection bool      `json:"isSmartCollection"`
	SmartFilters      *string   `json:"smartFilters"`
}

func (req createCollectionRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

// Create handles POST /api/collections.
func (h *Collections) Create(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	color := req.Color
	if color == "" {
		color = "#8b5cf6"
	}
	created, err := h.collections.Create(&models.Collection{
		ManuscriptID:      req.ManuscriptID,
		Name:              req.Name,
		Description:       req.Description,
		Color:             color,
		IsSmartCollection: req.IsSmartCollection,
		SmartFilters:      req.SmartFilters,
	})
	if err != nil {
		slog.Error("create collection", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create collection")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateCollectionRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	SmartFilters *string `json:"smartFilters"`
}

// Update handles PATCH /api/collections/{id}.
func (h *Collections) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}

	var req updateCollectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.SmartFilters != nil {
		c.SmartFilters = req.SmartFilters
	}

	if err := h.collections.Update(c); err != nil {
		slog.Error("update collection", "id", c.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update collection")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/collections/{id}. Memberships cascade; the
// sections themselves are untouched.
func (h *Collections) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.collections.Delete(c.ID); err != nil {
		slog.Error("delete collection", "id", c.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete collection")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddItem handles POST /api/collections/{id}/items/{sectionId}. Adding a
// section already in the collection is a no-op.
func (h *Collections) AddItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	sectionID, ok := urlUUID(r, "sectionId")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid section id")
		return
	}

	sec, err := h.sections.FindByID(sectionID)
	if err != nil {
		slog.Error("find section", "id", sectionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load section")
		return
	}
	if sec == nil || sec.ManuscriptID != c.ManuscriptID {
		respondError(w, http.StatusNotFound, "section not found")
		return
	}

	if err := h.collections.AddItem(c.ID, sectionID); err != nil {
		slog.Error("add collection item", "collection", c.ID, "section", sectionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to add section to collection")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RemoveItem handles DELETE /api/collections/{id}/items/{sectionId}.
func (h *Collections) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	sectionID, ok := urlUUID(r, "sectionId")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid section id")
		return
	}
	if err := h.collections.RemoveItem(c.ID, sectionID); err != nil {
		slog.Error("remove collection item", "collection", c.ID, "section", sectionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to remove section from collection")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Collections) load(w http.ResponseWriter, r *http.Request) (*models.Collection, bool) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid collection id")
		return nil, false
	}
	c, err := h.collections.FindByID(id)
	if err != nil {
		slog.Error("find collection", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load collection")
		return nil, false
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "collection not found")
		return nil, false
	}
	return c, true
}
