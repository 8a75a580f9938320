// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"chronicle/internal/models"
	"chronicle/internal/slug"
	"chronicle/internal/store"
)

// Taxonomy groups the category and tag handlers.
type Taxonomy struct {
	categories *store.CategoryStore
	tags       *store.TagStore
}

// NewTaxonomy creates the taxonomy handler group.
func NewTaxonomy(categories *store.CategoryStore, tags *store.TagStore) *Taxonomy {
	return &Taxonomy{categories: categories, tags: tags}
}

// ListCategories handles GET /api/categories.
func (h *Taxonomy) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		slog.Error("list categories", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
	Color       string  `json:"color"`
}

func (req createCategoryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Type, validation.Required, validation.In("event_type", "era", "region")),
	)
}

// CreateCategory handles POST /api/categories.
func (h *Taxonomy) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
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
		color = "#3b82f6"
	}
	created, err := h.categories.Create(&models.Category{
		Name:        req.Name,
		Slug:        slug.Generate(req.Name),
		Description: req.Description,
		Type:        models.CategoryType(req.Type),
		Color:       color,
	})
	if err != nil {
		slog.Error("create category", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// DeleteCategory handles DELETE /api/categories/{id}.
func (h *Taxonomy) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.categories.Delete(id); err != nil {
		slog.Error("delete category", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListTags handles GET /api/tags.
func (h *Taxonomy) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List()
	if err != nil {
		slog.Error("list tags", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list tags")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	respondJSON(w, http.StatusOK, tags)
}

type createTagRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

func (req createTagRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

// CreateTag handles POST /api/tags.
func (h *Taxonomy) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
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
		color = "#64748b"
	}
	created, err := h.tags.Create(&models.Tag{
		Name:        req.Name,
		Slug:        slug.Generate(req.Name),
		Description: req.Description,
		Color:       color,
	})
	if err != nil {
		slog.Error("create tag", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create tag")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// DeleteTag handles DELETE /api/tags/{id}.
func (h *Taxonomy) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}
	if err := h.tags.Delete(id); err != nil {
		slog.Error("delete tag", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
