// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// manuscripts_db_test.go exercises the save-book flow against a real
// database. Tests are skipped if PostgreSQL is not available.
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"chronicle/internal/database"
	"chronicle/internal/models"
	"chronicle/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations,
// skipping the test when PostgreSQL is unreachable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "chronicle")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "chronicle")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveBookRoundTrip(t *testing.T) {
	db := testDB(t)

	manuscripts := store.NewManuscriptStore(db)
	sections := store.NewSectionStore(db)
	h := NewManuscripts(manuscripts, sections, store.NewCacheLogStore(db))

	r := chi.NewRouter()
	r.Get("/api/save-book", h.SavedBook)
	r.Post("/api/save-book", h.SaveBook)

	m, err := manuscripts.Create(&models.Manuscript{
		Title:  "Save Book Roundtrip",
		Status: models.ManuscriptStatusDraft,
	})
	if err != nil {
		t.Fatalf("create manuscript: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM manuscripts WHERE id = $1", m.ID)
	})

	// Nothing saved yet.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/save-book?manuscriptId="+m.ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get before save: got %d: %s", rec.Code, rec.Body.String())
	}
	var before struct {
		HasSavedContent bool `json:"hasSavedContent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &before); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if before.HasSavedContent {
		t.Error("fresh manuscript should have no saved content")
	}

	// Save a compiled book.
	payload := `{"manuscriptId":"` + m.ID.String() + `","title":"Save Book Roundtrip","content":"<h1>Final</h1>","wordCount":1}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/save-book", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("save: got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Book saved successfully") {
		t.Errorf("unexpected save body: %s", rec.Body.String())
	}

	// Manuscript flips to completed and the content round-trips.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/save-book?manuscriptId="+m.ID.String(), nil))
	var after struct {
		Manuscript       models.Manuscript `json:"manuscript"`
		SavedBookContent *string           `json:"savedBookContent"`
		HasSavedContent  bool              `json:"hasSavedContent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !after.HasSavedContent || after.SavedBookContent == nil || *after.SavedBookContent != "<h1>Final</h1>" {
		t.Errorf("saved content did not round-trip: %s", rec.Body.String())
	}
	if after.Manuscript.Status != models.ManuscriptStatusCompleted {
		t.Errorf("status: got %s, want completed", after.Manuscript.Status)
	}

	// Marker section appended, excluded from future compiles.
	secs, err := sections.ListByManuscript(m.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	var marker *models.Section
	for i := range secs {
		if secs[i].SortOrder == 9999 {
			marker = &secs[i]
		}
	}
	if marker == nil {
		t.Fatal("marker section not created")
	}
	if marker.IncludeInCompile {
		t.Error("marker section must be excluded from compiles")
	}

	// Missing manuscriptId is a 400.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/save-book", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing manuscriptId: got %d, want 400", rec.Code)
	}
}
