// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chronicle/internal/book"
	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/slug"
	"chronicle/internal/storage"
)

// Compile runs the book pipeline: fetch, organize, render, print, publish.
// The run is synchronous; the status endpoint exists for clients that poll
// anyway.
type Compile struct {
	compiler  *book.Compiler
	pdf       *book.PDFProducer
	booksDir  string
	publicURL string
	respCache *cache.ResponseCache
	objects   *storage.Client
}

// NewCompile creates the compilation handler.
func NewCompile(compiler *book.Compiler, pdf *book.PDFProducer, booksDir, publicURL string, respCache *cache.ResponseCache, objects *storage.Client) *Compile {
	return &Compile{
		compiler:  compiler,
		pdf:       pdf,
		booksDir:  booksDir,
		publicURL: publicURL,
		respCache: respCache,
		objects:   objects,
	}
}

// Run handles POST /api/book/compile.
func (h *Compile) Run(w http.ResponseWriter, r *http.Request) {
	var opts models.BookCompilationOptions
	if err := decodeJSON(w, r, &opts); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if opts.Title == "" || opts.Author == "" {
		respondError(w, http.StatusBadRequest, "Title and author are required")
		return
	}

	items, err := h.compiler.FetchItems(&opts)
	if err != nil {
		slog.Error("fetch compile items", "error", err)
		h.fail(w, r, err)
		return
	}
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "No posts found matching the specified criteria")
		return
	}

	structure := h.compiler.Organize(items, &opts)
	html := book.RenderHTML(structure, &opts)

	pdfBytes, err := h.pdf.Print(r.Context(), html, &opts)
	if err != nil {
		slog.Error("print pdf", "error", err)
		h.fail(w, r, err)
		return
	}

	if err := os.MkdirAll(h.booksDir, 0o755); err != nil {
		slog.Error("create books dir", "dir", h.booksDir, "error", err)
		h.fail(w, r, err)
		return
	}
	filename := slug.Filename(opts.Title) + "_" + uuid.NewString() + ".pdf"
	path := filepath.Join(h.booksDir, filename)
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		slog.Error("write pdf", "path", path, "error", err)
		h.fail(w, r, err)
		return
	}

	// Mirror to object storage when configured; local copy is authoritative.
	var s3URL string
	if h.objects != nil {
		key := "books/" + filename
		if err := h.objects.Upload(r.Context(), key, "application/pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
			slog.Warn("upload pdf to object storage", "filename", filename, "error", err)
		} else {
			s3URL = h.objects.FileURL(key)
		}
	}

	downloadURL := h.publicURL + "/" + filename
	if h.respCache != nil {
		h.respCache.SetJob(r.Context(), &models.CompilationJob{
			JobID:       filename,
			Stage:       "complete",
			Progress:    100,
			Message:     "Compilation complete",
			DownloadURL: downloadURL,
		})
	}

	metadata := map[string]any{
		"title":       structure.Metadata.Title,
		"subtitle":    structure.Metadata.Subtitle,
		"author":      structure.Metadata.Author,
		"generatedAt": structure.Metadata.GeneratedAt,
		"totalPosts":  structure.Metadata.TotalPosts,
		"filename":    filename,
		"fileSize":    len(pdfBytes),
		"chapters":    len(structure.Chapters),
		"options": map[string]any{
			"template":      opts.Template,
			"pageSize":      opts.PageSize,
			"fontSize":      opts.FontSize,
			"includeImages": opts.IncludeImages,
		},
	}
	if s3URL != "" {
		metadata["s3Url"] = s3URL
	}

	slog.Info("book compiled", "filename", filename, "posts", structure.Metadata.TotalPosts, "bytes", len(pdfBytes))
	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"downloadUrl": downloadURL,
		"metadata":    metadata,
	})
}

func (h *Compile) fail(w http.ResponseWriter, r *http.Request, err error) {
	if h.respCache != nil {
		h.respCache.SetJob(r.Context(), &models.CompilationJob{
			JobID:    uuid.NewString(),
			Stage:    "error",
			Progress: 0,
			Message:  "Compilation failed",
			Error:    err.Error(),
		})
	}
	respondError(w, http.StatusInternalServerError, "Failed to compile book. Please try again.")
}

// Status handles GET /api/book/compile?jobId=... Compilation is synchronous,
// so an unknown or expired job is reported complete rather than failed.
func (h *Compile) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "Job ID is required")
		return
	}
	if h.respCache != nil {
		if job := h.respCache.GetJob(r.Context(), jobID); job != nil {
			respondJSON(w, http.StatusOK, job)
			return
		}
	}
	respondJSON(w, http.StatusOK, models.CompilationJob{
		JobID:    jobID,
		Stage:    "complete",
		Progress: 100,
		Message:  "Compilation complete",
	})
}
