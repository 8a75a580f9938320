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

// Images groups the image metadata handlers. Uploads themselves happen
// outside this service; these routes manage the metadata rows.
type Images struct {
	images *store.ImageStore
	posts  *store.PostStore
}

// NewImages creates the image handler group.
func NewImages(images *store.ImageStore, posts *store.PostStore) *Images {
	return &Images{images: images, posts: posts}
}

// ListByPost handles GET /api/posts/{id}/images.
func (h *Images) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	images, err := h.images.ListByPost(postID)
	if err != nil {
		slog.Error("list images", "post", postID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list images")
		return
	}
	for i := range images {
		images[i].URL = "/uploads/" + images[i].Filename
	}
	respondJSON(w, http.StatusOK, images)
}

type createImageRequest struct {
	PostID       uuid.UUID `json:"postId"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Alt          string    `json:"alt"`
	Caption      string    `json:"caption"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	IsHero       bool      `json:"isHero"`
	SortOrder    int       `json:"sortOrder"`
}

func (req createImageRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PostID, validation.Required),
		validation.Field(&req.Filename, validation.Required),
		validation.Field(&req.MimeType, validation.Required),
	)
}

// Create handles POST /api/images, registering an uploaded file's metadata
// against a post.
func (h *Images) Create(w http.ResponseWriter, r *http.Request) {
	var req createImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	post, err := h.posts.FindByID(req.PostID)
	if err != nil {
		slog.Error("find post", "id", req.PostID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	created, err := h.images.Create(&models.Image{
		PostID:       req.PostID,
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		Alt:          req.Alt,
		Caption:      req.Caption,
		Size:         req.Size,
		MimeType:     req.MimeType,
		Width:        req.Width,
		Height:       req.Height,
		IsHero:       req.IsHero,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		slog.Error("create image", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create image")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateImageRequest struct {
	Alt       *string `json:"alt"`
	Caption   *string `json:"caption"`
	IsHero    *bool   `json:"isHero"`
	SortOrder *int    `json:"sortOrder"`
}

// Update handles PATCH /api/images/{id}. Setting isHero demotes the post's
// other images.
func (h *Images) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req updateImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	img, err := h.images.FindByID(id)
	if err != nil {
		slog.Error("find image", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load image")
		return
	}
	if img == nil {
		respondError(w, http.StatusNotFound, "image not found")
		return
	}

	if req.Alt != nil {
		img.Alt = *req.Alt
	}
	if req.Caption != nil {
		img.Caption = *req.Caption
	}
	if req.IsHero != nil {
		img.IsHero = *req.IsHero
	}
	if req.SortOrder != nil {
		img.SortOrder = *req.SortOrder
	}

	if err := h.images.Update(img); err != nil {
		slog.Error("update image", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update image")
		return
	}
	respondJSON(w, http.StatusOK, img)
}

// Delete handles DELETE /api/images/{id}.
func (h *Images) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := h.images.FindByID(id)
	if err != nil {
		slog.Error("find image", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load image")
		return
	}
	if img == nil {
		respondError(w, http.StatusNotFound, "image not found")
		return
	}

	if err := h.images.Delete(id); err != nil {
		slog.Error("delete image", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
