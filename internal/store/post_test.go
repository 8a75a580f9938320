package store

import (
	"testing"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

func TestPostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-create-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	post := &models.Post{
		Title:       "Fall of Constantinople",
		Content:     "The city fell after a 53-day siege.",
		Excerpt:     "The end of the Byzantine Empire.",
		DateOfEvent: "1453-05-29",
		YearOfEvent: 1453,
		Slug:        slug,
		Status:      models.PostStatusDraft,
	}

	created, err := s.Create(post)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.YearOfEvent != 1453 {
		t.Errorf("year: got %d, want 1453", created.YearOfEvent)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected post, got nil")
	}
	if found.Slug != slug {
		t.Errorf("slug: got %q, want %q", found.Slug, slug)
	}

	// Not found returns nil, nil.
	missing, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestPostStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-list-filter-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	s.Create(&models.Post{
		Title: "Battle of Hastings Filtering Probe", Content: "1066 and all that.",
		Excerpt: "e", DateOfEvent: "1066-10-14", YearOfEvent: 1066,
		Slug: slug, Status: models.PostStatusDraft,
	})

	// Search matches title case-insensitively.
	posts, err := s.List("hastings filtering probe", "", 50, 0)
	if err != nil {
		t.Fatalf("List (search): %v", err)
	}
	found := false
	for _, p := range posts {
		if p.Slug == slug {
			found = true
		}
	}
	if !found {
		t.Error("expected probe post in search results")
	}

	// Status filter excludes drafts.
	published, err := s.List("hastings filtering probe", "published", 50, 0)
	if err != nil {
		t.Fatalf("List (status): %v", err)
	}
	for _, p := range published {
		if p.Slug == slug {
			t.Error("draft post leaked through published filter")
		}
	}
}

func TestPostStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-update-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	created, _ := s.Create(&models.Post{
		Title: "Original", Content: "body", Excerpt: "e",
		DateOfEvent: "1919-06-28", YearOfEvent: 1919,
		Slug: slug, Status: models.PostStatusDraft,
	})

	created.Title = "Updated Title"
	created.Status = models.PostStatusPublished
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(created.ID)
	if found.Title != "Updated Title" {
		t.Errorf("title: got %q, want %q", found.Title, "Updated Title")
	}
	if !found.IsPublished() {
		t.Error("expected published status after update")
	}
}

func TestPostStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-delete-post-" + uuid.NewString()[:8]
	created, _ := s.Create(&models.Post{
		Title: "Doomed", Content: "body", Excerpt: "e",
		DateOfEvent: "1815-06-18", YearOfEvent: 1815,
		Slug: slug, Status: models.PostStatusDraft,
	})

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, _ := s.FindByID(created.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestPostStoreCategoriesAndTags(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	cats := NewCategoryStore(db)
	tags := NewTagStore(db)

	slug := "test-labels-" + uuid.NewString()[:8]
	catSlug := "test-cat-" + uuid.NewString()[:8]
	tagSlug := "test-tag-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanPosts(t, db, slug)
		cleanCategories(t, db, catSlug)
		cleanTags(t, db, tagSlug)
	})

	post, _ := s.Create(&models.Post{
		Title: "Labelled", Content: "body", Excerpt: "e",
		DateOfEvent: "1789-07-14", YearOfEvent: 1789,
		Slug: slug, Status: models.PostStatusPublished,
	})
	cat, _ := cats.Create(&models.Category{
		Name: "Test Era", Slug: catSlug, Type: models.CategoryTypeEra, Color: "#888888",
	})
	tag, _ := tags.Create(&models.Tag{Name: "Test Tag", Slug: tagSlug, Color: "#999999"})

	if err := s.SetCategories(post.ID, []uuid.UUID{cat.ID}); err != nil {
		t.Fatalf("SetCategories: %v", err)
	}
	if err := s.SetTags(post.ID, []uuid.UUID{tag.ID}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}

	gotCats, err := s.CategoriesFor(post.ID)
	if err != nil {
		t.Fatalf("CategoriesFor: %v", err)
	}
	if len(gotCats) != 1 || gotCats[0].Slug != catSlug {
		t.Errorf("categories: got %v, want one with slug %q", gotCats, catSlug)
	}

	gotTags, err := s.TagsFor(post.ID)
	if err != nil {
		t.Fatalf("TagsFor: %v", err)
	}
	if len(gotTags) != 1 || gotTags[0].Slug != tagSlug {
		t.Errorf("tags: got %v, want one with slug %q", gotTags, tagSlug)
	}

	// Replacing with an empty set clears the links.
	if err := s.SetCategories(post.ID, nil); err != nil {
		t.Fatalf("SetCategories (clear): %v", err)
	}
	gotCats, _ = s.CategoriesFor(post.ID)
	if len(gotCats) != 0 {
		t.Errorf("expected no categories after clearing, got %d", len(gotCats))
	}
}
