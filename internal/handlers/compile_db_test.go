// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// compile_db_test.go exercises the compile endpoint's fetch stage against a
// real database. Tests are skipped if PostgreSQL is not available.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chronicle/internal/book"
	"chronicle/internal/models"
	"chronicle/internal/store"
)

func TestCompileEmptyManuscriptRejected(t *testing.T) {
	db := testDB(t)

	manuscripts := store.NewManuscriptStore(db)
	sections := store.NewSectionStore(db)
	compiler := book.NewCompiler(store.NewPostStore(db), sections)
	h := NewCompile(compiler, book.NewPDFProducer(""), t.TempDir(), "/books", nil, nil)

	m, err := manuscripts.Create(&models.Manuscript{
		Title:  "Empty Compile Source",
		Status: models.ManuscriptStatusDraft,
	})
	if err != nil {
		t.Fatalf("create manuscript: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM manuscripts WHERE id = $1", m.ID)
	})

	// A folder section does not qualify; only document sections compile.
	if _, err := sections.Create(&models.Section{
		ManuscriptID: m.ID,
		Title:        "Outline",
		Type:         models.SectionTypeFolder,
		Status:       "draft",
	}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	payload := `{"title":"Empty Book","author":"A. Historian","manuscriptId":"` + m.ID.String() + `"}`
	rec := httptest.NewRecorder()
	h.Run(rec, httptest.NewRequest(http.MethodPost, "/api/book/compile", strings.NewReader(payload)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "No posts found matching the specified criteria") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
