package book

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

func TestItemFromSectionDefaults(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// No synopsis, no date: excerpt truncates content, date defaults to today.
	long := strings.Repeat("x", 300)
	sec := &models.Section{
		ID:      uuid.New(),
		Title:   "Bare Section",
		Content: long,
		Type:    models.SectionTypeDocument,
	}

	item := itemFromSection(sec, now)
	if len(item.Excerpt) != 200 {
		t.Errorf("excerpt length: got %d, want 200", len(item.Excerpt))
	}
	if item.DateOfEvent != "2026-08-29" {
		t.Errorf("date: got %q, want 2026-08-29", item.DateOfEvent)
	}
	if item.YearOfEvent != 2026 {
		t.Errorf("year: got %d, want 2026", item.YearOfEvent)
	}
	if item.Status != models.PostStatusPublished {
		t.Errorf("status: got %q, want published", item.Status)
	}
	if !strings.HasPrefix(item.Slug, "section-") {
		t.Errorf("slug: got %q, want section- prefix", item.Slug)
	}
	if item.Categories == nil || item.Tags == nil {
		t.Error("expected empty, non-nil category and tag lists")
	}

	// The date must be valid ISO even when absent on the section.
	if _, err := time.Parse("2006-01-02", item.DateOfEvent); err != nil {
		t.Errorf("date not ISO: %v", err)
	}
}

func TestItemFromSectionExcerptRuneBoundary(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// A two-byte rune straddles the 200-byte cut; the excerpt must back up
	// to the boundary instead of keeping half the rune.
	sec := &models.Section{
		ID:      uuid.New(),
		Title:   "Accented Section",
		Content: strings.Repeat("x", 199) + "é and more text",
		Type:    models.SectionTypeDocument,
	}

	item := itemFromSection(sec, now)
	if !utf8.ValidString(item.Excerpt) {
		t.Fatalf("excerpt is not valid UTF-8: %q", item.Excerpt)
	}
	if len(item.Excerpt) != 199 {
		t.Errorf("excerpt length: got %d, want 199", len(item.Excerpt))
	}
	if !strings.HasSuffix(item.Excerpt, "x") {
		t.Errorf("excerpt should end at the last whole rune: %q", item.Excerpt[190:])
	}

	// A cut landing between runes keeps the full budget.
	sec.Content = strings.Repeat("é", 100) + "tail"
	item = itemFromSection(sec, now)
	if len(item.Excerpt) != 200 || !utf8.ValidString(item.Excerpt) {
		t.Errorf("aligned cut: got len %d valid=%v", len(item.Excerpt), utf8.ValidString(item.Excerpt))
	}
}

func TestItemFromSectionPrefersSynopsisAndDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	synopsis := "A short summary."
	date := "1919-06-28"
	sec := &models.Section{
		ID:          uuid.New(),
		Title:       "Dated Section",
		Content:     "Full body text.",
		Synopsis:    &synopsis,
		DateOfEvent: &date,
		Type:        models.SectionTypeDocument,
	}

	item := itemFromSection(sec, now)
	if item.Excerpt != synopsis {
		t.Errorf("excerpt: got %q, want synopsis", item.Excerpt)
	}
	if item.DateOfEvent != date {
		t.Errorf("date: got %q, want %q", item.DateOfEvent, date)
	}
	if item.YearOfEvent != 1919 {
		t.Errorf("year: got %d, want 1919", item.YearOfEvent)
	}
}

func TestOrganizeSingleChapter(t *testing.T) {
	c := NewCompiler(nil, nil)
	items := []models.PostWithRelations{
		{Post: models.Post{Title: "One"}},
		{Post: models.Post{Title: "Two"}},
	}

	opts := &models.BookCompilationOptions{Title: "My Book", Author: "A. Historian"}
	structure := c.Organize(items, opts)

	if len(structure.Chapters) != 1 {
		t.Fatalf("chapters: got %d, want 1", len(structure.Chapters))
	}
	if structure.Chapters[0].Title != "Historical Events" {
		t.Errorf("chapter title: got %q", structure.Chapters[0].Title)
	}
	if structure.Metadata.TotalPosts != 2 {
		t.Errorf("total posts: got %d, want 2", structure.Metadata.TotalPosts)
	}
	if len(structure.TableOfContents) != 1 {
		t.Fatalf("toc entries: got %d, want 1", len(structure.TableOfContents))
	}
	if structure.TableOfContents[0].Posts != 2 {
		t.Errorf("toc post count: got %d, want 2", structure.TableOfContents[0].Posts)
	}

	// Items stay in fetch order.
	if structure.Chapters[0].Posts[0].Title != "One" {
		t.Error("items reordered by organizer")
	}

	// Manuscript-sourced compiles get the other chapter label.
	id := uuid.New()
	opts.ManuscriptID = &id
	structure = c.Organize(items, opts)
	if structure.Chapters[0].Title != "Manuscript Content" {
		t.Errorf("chapter title: got %q, want Manuscript Content", structure.Chapters[0].Title)
	}
}
