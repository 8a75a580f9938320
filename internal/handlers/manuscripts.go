// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chronicle/internal/models"
	"chronicle/internal/store"
)

// Manuscripts groups the manuscript CRUD and save-book handlers.
type Manuscripts struct {
	manuscripts *store.ManuscriptStore
	sections    *store.SectionStore
	cacheLog    *store.CacheLogStore
}

// NewManuscripts creates the manuscript handler group.
func NewManuscripts(manuscripts *store.ManuscriptStore, sections *store.SectionStore, cacheLog *store.CacheLogStore) *Manuscripts {
	return &Manuscripts{manuscripts: manuscripts, sections: sections, cacheLog: cacheLog}
}

// List handles GET /api/manuscripts.
func (h *Manuscripts) List(w http.ResponseWriter, r *http.Request) {
	manuscripts, err := h.manuscripts.List()
	if err != nil {
		slog.Error("list manuscripts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list manuscripts")
		return
	}
	if manuscripts == nil {
		manuscripts = []models.Manuscript{}
	}
	respondJSON(w, http.StatusOK, manuscripts)
}

// Get handles GET /api/manuscripts/{id}.
func (h *Manuscripts) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// load fetches the route's manuscript, responding with the appropriate
// error when it cannot.
func (h *Manuscripts) load(w http.ResponseWriter, r *http.Request) (*models.Manuscript, bool) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return nil, false
	}
	m, err := h.manuscripts.FindByID(id)
	if err != nil {
		slog.Error("find manuscript", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load manuscript")
		return nil, false
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "manuscript not found")
		return nil, false
	}
	return m, true
}

type createManuscriptRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	TargetWordCount *int    `json:"targetWordCount"`
}

func (req createManuscriptRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
	)
}

// Create handles POST /api/manuscripts.
func (h *Manuscripts) Create(w http.ResponseWriter, r *http.Request) {
	var req createManuscriptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	created, err := h.manuscripts.Create(&models.Manuscript{
		Title:           req.Title,
		Description:     req.Description,
		Status:          models.ManuscriptStatusDraft,
		TargetWordCount: req.TargetWordCount,
	})
	if err != nil {
		slog.Error("create manuscript", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create manuscript")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateManuscriptRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	TargetWordCount *int    `json:"targetWordCount"`
	Settings        *string `json:"settings"`
}

// Update handles PATCH /api/manuscripts/{id}.
func (h *Manuscripts) Update(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}

	var req updateManuscriptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = req.Description
	}
	if req.Status != nil {
		switch models.ManuscriptStatus(*req.Status) {
		case models.ManuscriptStatusDraft, models.ManuscriptStatusInProgress, models.ManuscriptStatusCompleted:
			m.Status = models.ManuscriptStatus(*req.Status)
		default:
			respondError(w, http.StatusBadRequest, "invalid manuscript status")
			return
		}
	}
	if req.TargetWordCount != nil {
		m.TargetWordCount = req.TargetWordCount
	}
	if req.Settings != nil {
		m.Settings = req.Settings
	}

	if err := h.manuscripts.Update(m); err != nil {
		slog.Error("update manuscript", "id", m.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update manuscript")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /api/manuscripts/{id}. Sections and their
// dependents cascade.
func (h *Manuscripts) Delete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.manuscripts.Delete(m.ID); err != nil {
		slog.Error("delete manuscript", "id", m.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete manuscript")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type saveBookRequest struct {
	ManuscriptID uuid.UUID `json:"manuscriptId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	WordCount    int       `json:"wordCount"`
}

func (req saveBookRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Content, validation.Required),
	)
}

// SaveBook handles POST /api/save-book. The compiled HTML is stashed in
// the manuscript's settings blob (no schema versioning on that structure)
// and an excluded marker section is appended at the end of the storyboard.
func (h *Manuscripts) SaveBook(w http.ResponseWriter, r *http.Request) {
	var req saveBookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "missing required fields: manuscriptId, title, content", err.Error())
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	settings, err := json.Marshal(models.SavedBook{
		CompiledBookContent: req.Content,
		LastCompiled:        now,
		ContentType:         "compiled-book",
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save book")
		return
	}

	updated, err := h.manuscripts.SaveCompiledBook(req.ManuscriptID, req.Title, req.WordCount, string(settings))
	if err != nil {
		slog.Error("save compiled book", "manuscript", req.ManuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save book")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "manuscript not found")
		return
	}

	// Marker section holding the final content, excluded from future compiles.
	synopsis := "Final compiled book content"
	notes := "Auto-generated compiled book section"
	icon := "book"
	keywords := "compiled, book, final"
	if _, err := h.sections.Create(&models.Section{
		ManuscriptID:     req.ManuscriptID,
		Title:            req.Title + " - Compiled Book",
		Content:          req.Content,
		Synopsis:         &synopsis,
		Type:             models.SectionTypeDocument,
		SortOrder:        9999,
		WordCount:        req.WordCount,
		IncludeInCompile: false,
		Notes:            &notes,
		Status:           "completed",
		CustomIcon:       &icon,
		Keywords:         &keywords,
	}); err != nil {
		slog.Error("create compiled book section", "manuscript", req.ManuscriptID, "error", err)
	}

	if h.cacheLog != nil {
		if err := h.cacheLog.Record("manuscripts", req.ManuscriptID, "update"); err != nil {
			slog.Warn("record cache invalidation", "manuscript", req.ManuscriptID, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Book saved successfully",
		"manuscript": updated,
		"savedAt":    now,
	})
}

// SavedBook handles GET /api/save-book?manuscriptId=..., returning the
// last compiled book content if one is stashed in the settings blob.
func (h *Manuscripts) SavedBook(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("manuscriptId")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "manuscriptId parameter is required")
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}

	m, err := h.manuscripts.FindByID(id)
	if err != nil {
		slog.Error("find manuscript", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load manuscript")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "manuscript not found")
		return
	}

	var content, lastCompiled *string
	if sb := models.SavedBookFromSettings(m.Settings); sb != nil {
		content = &sb.CompiledBookContent
		lastCompiled = &sb.LastCompiled
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"manuscript":       m,
		"savedBookContent": content,
		"lastCompiled":     lastCompiled,
		"hasSavedContent":  content != nil,
	})
}
