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

// Research groups the research-reference handlers.
type Research struct {
	research *store.ResearchStore
}

// NewResearch creates the research handler group.
func NewResearch(research *store.ResearchStore) *Research {
	return &Research{research: research}
}

// ListByManuscript handles GET /api/manuscripts/{id}/research. Pinned
// references sort first.
func (h *Research) ListByManuscript(w http.ResponseWriter, r *http.Request) {
	manuscriptID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}
	refs, err := h.research.ListByManuscript(manuscriptID)
	if err != nil {
		slog.Error("list research", "manuscript", manuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list research references")
		return
	}
	if refs == nil {
		refs = []models.ResearchReference{}
	}
	respondJSON(w, http.StatusOK, refs)
}

type createResearchRequest struct {
	ManuscriptID uuid.UUID `json:"manuscriptId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Source       *string   `json:"source"`
	Type         string    `json:"type"`
	Tags         *string   `json:"tags"`
	IsPinned     bool      `json:"isPinned"`
}

func (req createResearchRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Type, validation.In("", "web", "book", "article", "interview", "document", "image")),
	)
}

// Create handles POST /api/research.
func (h *Research) Create(w http.ResponseWriter, r *http.Request) {
	var req createResearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	refType := models.ReferenceType(req.Type)
	if refType == "" {
		refType = models.ReferenceTypeWeb
	}
	created, err := h.research.Create(&models.ResearchReference{
		ManuscriptID: req.ManuscriptID,
		Title:        req.Title,
		Content:      req.Content,
		Source:       req.Source,
		Type:         refType,
		Tags:         req.Tags,
		IsPinned:     req.IsPinned,
	})
	if err != nil {
		slog.Error("create research reference", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create research reference")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateResearchRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Source   *string `json:"source"`
	Type     *string `json:"type"`
	Tags     *string `json:"tags"`
	IsPinned *bool   `json:"isPinned"`
}

// Update handles PATCH /api/research/{id}.
func (h *Research) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid research reference id")
		return
	}

	var req updateResearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := h.research.FindByID(id)
	if err != nil {
		slog.Error("find research reference", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load research reference")
		return
	}
	if ref == nil {
		respondError(w, http.StatusNotFound, "research reference not found")
		return
	}

	if req.Title != nil {
		ref.Title = *req.Title
	}
	if req.Content != nil {
		ref.Content = *req.Content
	}
	if req.Source != nil {
		ref.Source = req.Source
	}
	if req.Type != nil {
		switch models.ReferenceType(*req.Type) {
		case models.ReferenceTypeWeb, models.ReferenceTypeBook, models.ReferenceTypeArticle,
			models.ReferenceTypeInterview, models.ReferenceTypeDocument, models.ReferenceTypeImage:
			ref.Type = models.ReferenceType(*req.Type)
		default:
			respondError(w, http.StatusBadRequest, "invalid reference type")
			return
		}
	}
	if req.Tags != nil {
		ref.Tags = req.Tags
	}
	if req.IsPinned != nil {
		ref.IsPinned = *req.IsPinned
	}

	if err := h.research.Update(ref); err != nil {
		slog.Error("update research reference", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update research reference")
		return
	}
	respondJSON(w, http.StatusOK, ref)
}

// Delete handles DELETE /api/research/{id}.
func (h *Research) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid research reference id")
		return
	}
	if err := h.research.Delete(id); err != nil {
		slog.Error("delete research reference", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete research reference")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
