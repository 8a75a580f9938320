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

// Sections groups the storyboard section handlers plus their nested
// snapshot and comment routes.
type Sections struct {
	sections    *store.SectionStore
	manuscripts *store.ManuscriptStore
	snapshots   *store.SnapshotStore
	comments    *store.CommentStore
}

// NewSections creates the section handler group.
func NewSections(sections *store.SectionStore, manuscripts *store.ManuscriptStore, snapshots *store.SnapshotStore, comments *store.CommentStore) *Sections {
	return &Sections{sections: sections, manuscripts: manuscripts, snapshots: snapshots, comments: comments}
}

// ListByManuscript handles GET /api/manuscripts/{id}/sections.
func (h *Sections) ListByManuscript(w http.ResponseWriter, r *http.Request) {
	manuscriptID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}
	sections, err := h.sections.ListByManuscript(manuscriptID)
	if err != nil {
		slog.Error("list sections", "manuscript", manuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list sections")
		return
	}
	respondJSON(w, http.StatusOK, sections)
}

type createSectionRequest struct {
	ManuscriptID uuid.UUID  `json:"manuscriptId"`
	ParentID     *uuid.UUID `json:"parentId"`
	PostID       *uuid.UUID `json:"postId"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Synopsis     *string    `json:"synopsis"`
	Type         string     `json:"type"`
	SortOrder    int        `json:"sortOrder"`
	DateOfEvent  *string    `json:"dateOfEvent"`
	Label        *string    `json:"label"`
	Keywords     *string    `json:"keywords"`
	Notes        *string    `json:"notes"`
}

func (req createSectionRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Type, validation.Required, validation.In(
			"folder", "document", "note", "research", "character",
			"location", "scene", "historical_event",
		)),
	)
}

// Create handles POST /api/sections.
func (h *Sections) Create(w http.ResponseWriter, r *http.Request) {
	var req createSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	m, err := h.manuscripts.FindByID(req.ManuscriptID)
	if err != nil {
		slog.Error("find manuscript", "id", req.ManuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load manuscript")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "manuscript not found")
		return
	}

	created, err := h.sections.Create(&models.Section{
		ManuscriptID:     req.ManuscriptID,
		ParentID:         req.ParentID,
		PostID:           req.PostID,
		Title:            req.Title,
		Content:          req.Content,
		Synopsis:         req.Synopsis,
		Type:             models.SectionType(req.Type),
		SortOrder:        req.SortOrder,
		WordCount:        models.CountWords(req.Content),
		IncludeInCompile: true,
		Status:           "draft",
		Label:            req.Label,
		Keywords:         req.Keywords,
		Notes:            req.Notes,
		DateOfEvent:      req.DateOfEvent,
	})
	if err != nil {
		slog.Error("create section", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create section")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateSectionRequest struct {
	ParentID          *uuid.UUID `json:"parentId"`
	PostID            *uuid.UUID `json:"postId"`
	Title             *string    `json:"title"`
	Content           *string    `json:"content"`
	Synopsis          *string    `json:"synopsis"`
	Type              *string    `json:"type"`
	SortOrder         *int       `json:"sortOrder"`
	TargetWordCount   *int       `json:"targetWordCount"`
	IncludeInCompile  *bool      `json:"includeInCompile"`
	Notes             *string    `json:"notes"`
	Status            *string    `json:"status"`
	Label             *string    `json:"label"`
	Keywords          *string    `json:"keywords"`
	CustomIcon        *string    `json:"customIcon"`
	DateOfEvent       *string    `json:"dateOfEvent"`
	Metadata          *string    `json:"metadata"`
	CorkboardPosition *string    `json:"corkboardPosition"`
}

// Update handles PATCH /api/sections/{id}. Editing content recomputes the
// stored word count.
func (h *Sections) Update(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}

	var req updateSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ParentID != nil {
		sec.ParentID = req.ParentID
	}
	if req.PostID != nil {
		sec.PostID = req.PostID
	}
	if req.Title != nil {
		sec.Title = *req.Title
	}
	if req.Content != nil {
		sec.Content = *req.Content
		sec.WordCount = models.CountWords(*req.Content)
	}
	if req.Synopsis != nil {
		sec.Synopsis = req.Synopsis
	}
	if req.Type != nil {
		sec.Type = models.SectionType(*req.Type)
	}
	if req.SortOrder != nil {
		sec.SortOrder = *req.SortOrder
	}
	if req.TargetWordCount != nil {
		sec.TargetWordCount = req.TargetWordCount
	}
	if req.IncludeInCompile != nil {
		sec.IncludeInCompile = *req.IncludeInCompile
	}
	if req.Notes != nil {
		sec.Notes = req.Notes
	}
	if req.Status != nil {
		sec.Status = *req.Status
	}
	if req.Label != nil {
		sec.Label = req.Label
	}
	if req.Keywords != nil {
		sec.Keywords = req.Keywords
	}
	if req.CustomIcon != nil {
		sec.CustomIcon = req.CustomIcon
	}
	if req.DateOfEvent != nil {
		sec.DateOfEvent = req.DateOfEvent
	}
	if req.Metadata != nil {
		sec.Metadata = req.Metadata
	}
	if req.CorkboardPosition != nil {
		sec.CorkboardPosition = req.CorkboardPosition
	}

	if err := h.sections.Update(sec); err != nil {
		slog.Error("update section", "id", sec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update section")
		return
	}
	respondJSON(w, http.StatusOK, sec)
}

// Get handles GET /api/sections/{id}.
func (h *Sections) Get(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sec)
}

// Delete handles DELETE /api/sections/{id}.
func (h *Sections) Delete(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}
	if err := h.sections.Delete(sec.ID); err != nil {
		slog.Error("delete section", "id", sec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete section")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Sections) loadSection(w http.ResponseWriter, r *http.Request) (*models.Section, bool) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid section id")
		return nil, false
	}
	sec, err := h.sections.FindByID(id)
	if err != nil {
		slog.Error("find section", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load section")
		return nil, false
	}
	if sec == nil {
		respondError(w, http.StatusNotFound, "section not found")
		return nil, false
	}
	return sec, true
}

// ListSnapshots handles GET /api/sections/{id}/snapshots.
func (h *Sections) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}
	snapshots, err := h.snapshots.ListBySection(sec.ID)
	if err != nil {
		slog.Error("list snapshots", "section", sec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

type createSnapshotRequest struct {
	Description *string `json:"description"`
	IsAutomatic bool    `json:"isAutomatic"`
}

// CreateSnapshot handles POST /api/sections/{id}/snapshots, capturing the
// section's current title and content at the next version number.
func (h *Sections) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}

	var req createSnapshotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.snapshots.Create(&models.Snapshot{
		SectionID:    sec.ID,
		ManuscriptID: sec.ManuscriptID,
		Title:        sec.Title,
		Content:      sec.Content,
		WordCount:    sec.WordCount,
		Description:  req.Description,
		IsAutomatic:  req.IsAutomatic,
	})
	if err != nil {
		slog.Error("create snapshot", "section", sec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create snapshot")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// RestoreSnapshot handles POST /api/snapshots/{id}/restore, writing the
// snapshot's title and content back onto its section.
func (h *Sections) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}
	snap, err := h.snapshots.FindByID(id)
	if err != nil {
		slog.Error("find snapshot", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}
	if snap == nil {
		respondError(w, http.StatusNotFound, "snapshot not found")
		return
	}

	sec, err := h.sections.FindByID(snap.SectionID)
	if err != nil {
		slog.Error("find section", "id", snap.SectionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load section")
		return
	}
	if sec == nil {
		respondError(w, http.StatusNotFound, "section not found")
		return
	}

	sec.Title = snap.Title
	sec.Content = snap.Content
	sec.WordCount = models.CountWords(snap.Content)
	if err := h.sections.Update(sec); err != nil {
		slog.Error("restore snapshot", "snapshot", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to restore snapshot")
		return
	}
	respondJSON(w, http.StatusOK, sec)
}

// DeleteSnapshot handles DELETE /api/snapshots/{id}.
func (h *Sections) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}
	if err := h.snapshots.Delete(id); err != nil {
		slog.Error("delete snapshot", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete snapshot")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListComments handles GET /api/sections/{id}/comments.
func (h *Sections) ListComments(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}
	comments, err := h.comments.ListBySection(sec.ID)
	if err != nil {
		slog.Error("list comments", "section", sec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	Content    string  `json:"content"`
	Position   int     `json:"position"`
	Length     int     `json:"length"`
	Type       string  `json:"type"`
	Color      string  `json:"color"`
	AuthorNote *string `json:"authorNote"`
}

func (req createCommentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Position, validation.Min(0)),
		validation.Field(&req.Type, validation.In("", "comment", "annotation", "revision", "highlight")),
	)
}

// CreateComment handles POST /api/sections/{id}/comments.
func (h *Sections) CreateComment(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.loadSection(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	commentType := models.CommentType(req.Type)
	if commentType == "" {
		commentType = models.CommentTypeComment
	}
	color := req.Color
	if color == "" {
		color = "#fbbf24"
	}

	created, err := h.comments.Create(&models.Comment{
		SectionID:    sec.ID,
		ManuscriptID: sec.ManuscriptID,
		Content:      req.Content,
		Position:     req.Position,
		Length:       req.Length,
		Type:         commentType,
		Status:       models.CommentStatusOpen,
		Color:        color,
		AuthorNote:   req.AuthorNote,
	})
	if err != nil {
		slog.Error("create comment", "section", sec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create comment")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateCommentRequest struct {
	Content    *string `json:"content"`
	Status     *string `json:"status"`
	Color      *string `json:"color"`
	AuthorNote *string `json:"authorNote"`
}

// UpdateComment handles PATCH /api/comments/{id}, typically to resolve or
// archive an annotation.
func (h *Sections) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req updateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.FindByID(id)
	if err != nil {
		slog.Error("find comment", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load comment")
		return
	}
	if comment == nil {
		respondError(w, http.StatusNotFound, "comment not found")
		return
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.Status != nil {
		switch models.CommentStatus(*req.Status) {
		case models.CommentStatusOpen, models.CommentStatusResolved, models.CommentStatusArchived:
			comment.Status = models.CommentStatus(*req.Status)
		default:
			respondError(w, http.StatusBadRequest, "invalid comment status")
			return
		}
	}
	if req.Color != nil {
		comment.Color = *req.Color
	}
	if req.AuthorNote != nil {
		comment.AuthorNote = req.AuthorNote
	}

	if err := h.comments.Update(comment); err != nil {
		slog.Error("update comment", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update comment")
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/{id}.
func (h *Sections) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := h.comments.Delete(id); err != nil {
		slog.Error("delete comment", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete comment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
