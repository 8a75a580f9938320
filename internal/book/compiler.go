// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package book implements the compilation pipeline: fetch content items,
// organize them into a book structure, render HTML, and print it to PDF
// through a headless browser.
package book

import (
	"fmt"
	"time"
	"unicode/utf8"

	"chronicle/internal/models"
	"chronicle/internal/store"
)

// Compiler assembles posts or manuscript sections into a book structure.
type Compiler struct {
	posts    *store.PostStore
	sections *store.SectionStore
}

// NewCompiler creates a compiler reading from the given stores.
func NewCompiler(posts *store.PostStore, sections *store.SectionStore) *Compiler {
	return &Compiler{posts: posts, sections: sections}
}

// FetchItems produces the ordered list of content items for one compile.
//
// With a manuscript ID, the source is the manuscript's document sections in
// storyboard order; a section's linked post wins when present, otherwise an
// item is synthesized from the section's own fields. Without a manuscript ID,
// the source is all published posts, newest first.
//
// Items carry empty category and tag lists in both paths; enrichment is not
// performed here.
func (c *Compiler) FetchItems(opts *models.BookCompilationOptions) ([]models.PostWithRelations, error) {
	if opts.ManuscriptID != nil {
		rows, err := c.sections.ListDocumentSectionsWithPosts(*opts.ManuscriptID)
		if err != nil {
			return nil, fmt.Errorf("fetch manuscript sections: %w", err)
		}
		items := make([]models.PostWithRelations, 0, len(rows))
		for _, row := range rows {
			if row.Post != nil {
				items = append(items, models.PostWithRelations{
					Post:       *row.Post,
					Categories: []models.Category{},
					Tags:       []models.Tag{},
				})
				continue
			}
			items = append(items, itemFromSection(&row.Section, time.Now()))
		}
		return items, nil
	}

	posts, err := c.posts.ListPublished()
	if err != nil {
		return nil, fmt.Errorf("fetch published posts: %w", err)
	}
	items := make([]models.PostWithRelations, 0, len(posts))
	for _, p := range posts {
		items = append(items, models.PostWithRelations{
			Post:       p,
			Categories: []models.Category{},
			Tags:       []models.Tag{},
		})
	}
	return items, nil
}

// itemFromSection synthesizes a post-shaped item from a section that has no
// linked post. Excerpt falls back to the first 200 characters of content,
// the event date to today.
func itemFromSection(sec *models.Section, now time.Time) models.PostWithRelations {
	excerpt := ""
	if sec.Synopsis != nil && *sec.Synopsis != "" {
		excerpt = *sec.Synopsis
	} else if sec.Content != "" {
		excerpt = truncateExcerpt(sec.Content, 200)
	}

	date := now.UTC().Format("2006-01-02")
	year := now.UTC().Year()
	if sec.DateOfEvent != nil && *sec.DateOfEvent != "" {
		date = *sec.DateOfEvent
		if parsed, err := time.Parse("2006-01-02", date); err == nil {
			year = parsed.Year()
		}
	}

	return models.PostWithRelations{
		Post: models.Post{
			ID:          sec.ID,
			Title:       sec.Title,
			Content:     sec.Content,
			Excerpt:     excerpt,
			DateOfEvent: date,
			YearOfEvent: year,
			Slug:        "section-" + sec.ID.String(),
			Status:      models.PostStatusPublished,
			CreatedAt:   sec.CreatedAt,
			UpdatedAt:   sec.UpdatedAt,
		},
		Categories: []models.Category{},
		Tags:       []models.Tag{},
	}
}

// truncateExcerpt cuts content to at most n bytes without splitting a
// multi-byte rune, so default excerpts stay valid UTF-8.
func truncateExcerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Organize groups the fetched items into the book structure the renderer
// consumes: one chapter holding everything, labeled by source, and a TOC
// with one entry per chapter.
func (c *Compiler) Organize(items []models.PostWithRelations, opts *models.BookCompilationOptions) *models.BookStructure {
	chapterTitle := "Historical Events"
	if opts.ManuscriptID != nil {
		chapterTitle = "Manuscript Content"
	}

	chapters := []models.BookChapter{
		{Title: chapterTitle, Posts: items},
	}

	toc := make([]models.TOCEntry, 0, len(chapters))
	for i, ch := range chapters {
		toc = append(toc, models.TOCEntry{
			Title: ch.Title,
			Page:  i + 1,
			Level: 1,
			Posts: len(ch.Posts),
		})
	}

	return &models.BookStructure{
		Metadata: models.BookMetadata{
			Title:       opts.Title,
			Subtitle:    opts.Subtitle,
			Author:      opts.Author,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalPosts:  len(items),
		},
		Chapters:        chapters,
		TableOfContents: toc,
	}
}
