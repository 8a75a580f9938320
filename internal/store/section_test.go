package store

import (
	"testing"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

func TestSectionStoreCreateAndList(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	m := testManuscript(t, db)

	second, err := s.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Chapter Two", Content: "two words",
		Type: models.SectionTypeDocument, SortOrder: 20,
		WordCount: 2, IncludeInCompile: true, Status: "draft",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := s.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Chapter One", Content: "one",
		Type: models.SectionTypeDocument, SortOrder: 10,
		WordCount: 1, IncludeInCompile: true, Status: "draft",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	sections, err := s.ListByManuscript(m.ID)
	if err != nil {
		t.Fatalf("ListByManuscript: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	// Ordered by sort_order, not creation order.
	if sections[0].ID != first.ID || sections[1].ID != second.ID {
		t.Error("sections not in sort_order sequence")
	}
}

func TestSectionStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewSectionStore(db)
	m := testManuscript(t, db)

	sec, _ := s.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Draft", Content: "initial",
		Type: models.SectionTypeDocument, SortOrder: 10,
		WordCount: 1, IncludeInCompile: true, Status: "draft",
	})

	sec.Title = "Revised"
	sec.Content = "three words now"
	sec.WordCount = models.CountWords(sec.Content)
	if err := s.Update(sec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(sec.ID)
	if found.Title != "Revised" {
		t.Errorf("title: got %q, want %q", found.Title, "Revised")
	}
	if found.WordCount != 3 {
		t.Errorf("word count: got %d, want 3", found.WordCount)
	}
}

func TestSectionStoreDeletePostNullsLink(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)
	posts := NewPostStore(db)
	m := testManuscript(t, db)

	slug := "test-nulled-link-" + uuid.NewString()[:8]
	post, _ := posts.Create(&models.Post{
		Title: "Linked Event", Content: "event body", Excerpt: "e",
		DateOfEvent: "1914-06-28", YearOfEvent: 1914,
		Slug: slug, Status: models.PostStatusPublished,
	})
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	sec, _ := sections.Create(&models.Section{
		ManuscriptID: m.ID, PostID: &post.ID, Title: "Linked Section",
		Content: "local copy", Type: models.SectionTypeDocument,
		SortOrder: 10, IncludeInCompile: true, Status: "draft",
	})

	if err := posts.Delete(post.ID); err != nil {
		t.Fatalf("Delete post: %v", err)
	}

	found, _ := sections.FindByID(sec.ID)
	if found == nil {
		t.Fatal("section should survive post deletion")
	}
	if found.PostID != nil {
		t.Error("expected post_id nulled after post deletion")
	}
	if found.Content != "local copy" {
		t.Error("section's own content should be untouched")
	}
}

func TestSectionStoreListDocumentSectionsWithPosts(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)
	posts := NewPostStore(db)
	m := testManuscript(t, db)

	slug := "test-compile-fetch-" + uuid.NewString()[:8]
	post, _ := posts.Create(&models.Post{
		Title: "Compile Source Event", Content: "post body wins", Excerpt: "e",
		DateOfEvent: "1920-01-16", YearOfEvent: 1920,
		Slug: slug, Status: models.PostStatusPublished,
	})
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	sections.Create(&models.Section{
		ManuscriptID: m.ID, PostID: &post.ID, Title: "Linked",
		Content: "shadowed", Type: models.SectionTypeDocument,
		SortOrder: 10, IncludeInCompile: true, Status: "draft",
	})
	sections.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Unlinked", Content: "own body",
		Type: models.SectionTypeDocument, SortOrder: 20,
		IncludeInCompile: true, Status: "draft",
	})
	// Folders never reach the compiler.
	sections.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Part I", Type: models.SectionTypeFolder,
		SortOrder: 5, IncludeInCompile: true, Status: "draft",
	})

	items, err := sections.ListDocumentSectionsWithPosts(m.ID)
	if err != nil {
		t.Fatalf("ListDocumentSectionsWithPosts: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 document sections, got %d", len(items))
	}
	if items[0].Post == nil {
		t.Fatal("expected joined post on linked section")
	}
	if items[0].Post.Content != "post body wins" {
		t.Errorf("post content: got %q", items[0].Post.Content)
	}
	if items[1].Post != nil {
		t.Error("expected nil post on unlinked section")
	}
}

func TestSnapshotStoreVersionsMonotonic(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)
	snaps := NewSnapshotStore(db)
	m := testManuscript(t, db)

	sec, _ := sections.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Versioned", Content: "v1",
		Type: models.SectionTypeDocument, SortOrder: 10,
		IncludeInCompile: true, Status: "draft",
	})

	first, err := snaps.Create(&models.Snapshot{
		SectionID: sec.ID, ManuscriptID: m.ID, Title: sec.Title,
		Content: "v1", WordCount: 1, IsAutomatic: true,
	})
	if err != nil {
		t.Fatalf("Create snapshot: %v", err)
	}
	second, err := snaps.Create(&models.Snapshot{
		SectionID: sec.ID, ManuscriptID: m.ID, Title: sec.Title,
		Content: "v2", WordCount: 1, IsAutomatic: false,
	})
	if err != nil {
		t.Fatalf("Create snapshot: %v", err)
	}

	if first.Version != 1 {
		t.Errorf("first version: got %d, want 1", first.Version)
	}
	if second.Version != 2 {
		t.Errorf("second version: got %d, want 2", second.Version)
	}

	list, err := snaps.ListBySection(sec.ID)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(list))
	}
	if list[0].Version != 2 {
		t.Error("expected newest version first")
	}
}

func TestCollectionStoreMembership(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)
	colls := NewCollectionStore(db)
	m := testManuscript(t, db)

	sec, _ := sections.Create(&models.Section{
		ManuscriptID: m.ID, Title: "Member", Content: "",
		Type: models.SectionTypeDocument, SortOrder: 10,
		IncludeInCompile: true, Status: "draft",
	})

	coll, err := colls.Create(&models.Collection{
		ManuscriptID: m.ID, Name: "Favorites", Color: "#3b82f6",
	})
	if err != nil {
		t.Fatalf("Create collection: %v", err)
	}

	if err := colls.AddItem(coll.ID, sec.ID); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	// Duplicate add is a no-op.
	if err := colls.AddItem(coll.ID, sec.ID); err != nil {
		t.Fatalf("AddItem (duplicate): %v", err)
	}

	found, _ := colls.FindByID(coll.ID)
	if found.SectionCount != 1 {
		t.Errorf("section count: got %d, want 1", found.SectionCount)
	}

	if err := colls.RemoveItem(coll.ID, sec.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	found, _ = colls.FindByID(coll.ID)
	if found.SectionCount != 0 {
		t.Errorf("section count after removal: got %d, want 0", found.SectionCount)
	}
}

func TestManuscriptStoreSaveCompiledBook(t *testing.T) {
	db := testDB(t)
	s := NewManuscriptStore(db)
	m := testManuscript(t, db)

	settings := `{"compiledBookContent":"<html></html>","lastCompiled":"2026-08-29T10:00:00Z","contentType":"text/html"}`
	updated, err := s.SaveCompiledBook(m.ID, "Compiled Title", 1234, settings)
	if err != nil {
		t.Fatalf("SaveCompiledBook: %v", err)
	}
	if updated.Status != models.ManuscriptStatusCompleted {
		t.Errorf("status: got %q, want completed", updated.Status)
	}
	if updated.WordCount != 1234 {
		t.Errorf("word count: got %d, want 1234", updated.WordCount)
	}

	sb := models.SavedBookFromSettings(updated.Settings)
	if sb == nil {
		t.Fatal("expected saved book parse from settings")
	}
	if sb.ContentType != "text/html" {
		t.Errorf("content type: got %q", sb.ContentType)
	}

	// Unknown manuscript yields nil, nil.
	missing, err := s.SaveCompiledBook(uuid.New(), "x", 0, "{}")
	if err != nil {
		t.Fatalf("SaveCompiledBook (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown manuscript")
	}
}
