// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chronicle/internal/cache"
	"chronicle/internal/markdown"
	"chronicle/internal/models"
	"chronicle/internal/slug"
	"chronicle/internal/store"
)

// Posts groups the post CRUD and preview handlers.
type Posts struct {
	posts     *store.PostStore
	images    *store.ImageStore
	respCache *cache.ResponseCache
	cacheLog  *store.CacheLogStore
}

// NewPosts creates the post handler group. respCache may be nil when
// Valkey is not configured; reads then always hit the store.
func NewPosts(posts *store.PostStore, images *store.ImageStore, respCache *cache.ResponseCache, cacheLog *store.CacheLogStore) *Posts {
	return &Posts{posts: posts, images: images, respCache: respCache, cacheLog: cacheLog}
}

type createPostRequest struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Excerpt     string      `json:"excerpt"`
	DateOfEvent string      `json:"dateOfEvent"`
	Slug        string      `json:"slug"`
	Status      string      `json:"status"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
	TagIDs      []uuid.UUID `json:"tagIds"`
}

func (req createPostRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.DateOfEvent, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Status, validation.In("", "draft", "published")),
	)
}

// List handles GET /api/posts with optional search, status, limit, and
// offset query parameters.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	status := q.Get("status")
	limit := intParam(q.Get("limit"), 50)
	offset := intParam(q.Get("offset"), 0)

	cacheKey := cache.PostListKey(search, status, limit, offset)
	if h.respCache != nil {
		if body, ok := h.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	posts, err := h.posts.List(search, models.PostStatus(status), limit, offset)
	if err != nil {
		slog.Error("list posts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	respondCached(w, r, h.respCache, cacheKey, posts)
}

// Get handles GET /api/posts/{id}, returning the post with its categories,
// tags, and images.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	cacheKey := cache.PostKey(id.String())
	if h.respCache != nil {
		if body, ok := h.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("find post", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	enriched, err := h.enrich(post)
	if err != nil {
		slog.Error("enrich post", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	respondCached(w, r, h.respCache, cacheKey, enriched)
}

func (h *Posts) enrich(post *models.Post) (*models.PostWithRelations, error) {
	categories, err := h.posts.CategoriesFor(post.ID)
	if err != nil {
		return nil, err
	}
	tags, err := h.posts.TagsFor(post.ID)
	if err != nil {
		return nil, err
	}
	images, err := h.images.ListByPost(post.ID)
	if err != nil {
		return nil, err
	}
	return &models.PostWithRelations{
		Post:       *post,
		Categories: categories,
		Tags:       tags,
		Images:     images,
	}, nil
}

// Create handles POST /api/posts. The event year is derived from the date
// here, once; later date edits do not recompute it.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	eventDate, _ := time.Parse("2006-01-02", req.DateOfEvent)

	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		DateOfEvent: req.DateOfEvent,
		YearOfEvent: eventDate.Year(),
		Slug:        req.Slug,
		Status:      models.PostStatus(req.Status),
	}
	if post.Excerpt == "" {
		post.Excerpt = truncate(req.Content, 200)
	}
	if post.Slug == "" {
		post.Slug = slug.Generate(req.Title)
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}

	created, err := h.posts.Create(post)
	if err != nil {
		slog.Error("create post", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	// Attach labels independently; a failure here does not roll back the post.
	if len(req.CategoryIDs) > 0 {
		if err := h.posts.SetCategories(created.ID, req.CategoryIDs); err != nil {
			slog.Error("attach categories", "post", created.ID, "error", err)
		}
	}
	if len(req.TagIDs) > 0 {
		if err := h.posts.SetTags(created.ID, req.TagIDs); err != nil {
			slog.Error("attach tags", "post", created.ID, "error", err)
		}
	}

	h.mutated(r, created.ID, "create")
	respondJSON(w, http.StatusCreated, created)
}

type updatePostRequest struct {
	Title       *string      `json:"title"`
	Content     *string      `json:"content"`
	Excerpt     *string      `json:"excerpt"`
	DateOfEvent *string      `json:"dateOfEvent"`
	Slug        *string      `json:"slug"`
	Status      *string      `json:"status"`
	CategoryIDs *[]uuid.UUID `json:"categoryIds"`
	TagIDs      *[]uuid.UUID `json:"tagIds"`
}

// Update handles PATCH /api/posts/{id} with read-modify-write semantics:
// only fields present in the body change.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req updatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("find post", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.DateOfEvent != nil {
		if _, err := time.Parse("2006-01-02", *req.DateOfEvent); err != nil {
			respondError(w, http.StatusBadRequest, "dateOfEvent must be YYYY-MM-DD")
			return
		}
		// YearOfEvent deliberately keeps its creation-time value.
		post.DateOfEvent = *req.DateOfEvent
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.Status != nil {
		if *req.Status != "draft" && *req.Status != "published" {
			respondError(w, http.StatusBadRequest, "status must be draft or published")
			return
		}
		post.Status = models.PostStatus(*req.Status)
	}

	if err := h.posts.Update(post); err != nil {
		slog.Error("update post", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	if req.CategoryIDs != nil {
		if err := h.posts.SetCategories(id, *req.CategoryIDs); err != nil {
			slog.Error("attach categories", "post", id, "error", err)
		}
	}
	if req.TagIDs != nil {
		if err := h.posts.SetTags(id, *req.TagIDs); err != nil {
			slog.Error("attach tags", "post", id, "error", err)
		}
	}

	h.mutated(r, id, "update")
	respondJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}. Sections linked to the post keep
// their copied content with the link nulled.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("find post", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	if err := h.posts.Delete(id); err != nil {
		slog.Error("delete post", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}

	h.mutated(r, id, "delete")
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type previewRequest struct {
	Content string `json:"content"`
}

// Preview handles POST /api/posts/preview, rendering Markdown content to
// HTML for the editor's preview pane.
func (h *Posts) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rendered, err := markdown.ToHTML(req.Content)
	if err != nil {
		slog.Error("render preview", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"html": rendered})
}

// mutated records the change in the invalidation log and drops cached
// post responses.
func (h *Posts) mutated(r *http.Request, id uuid.UUID, action string) {
	if h.cacheLog != nil {
		if err := h.cacheLog.Record("posts", id, action); err != nil {
			slog.Warn("record cache invalidation", "post", id, "error", err)
		}
	}
	if h.respCache != nil {
		h.respCache.InvalidatePrefix(r.Context(), "posts:")
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// truncate cuts s to at most n bytes, backing up to a rune boundary so the
// default excerpt never carries a split multi-byte rune into JSON payloads.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
