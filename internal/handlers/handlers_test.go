// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go covers the handler plumbing that needs no backing
// services: response helpers, request validation, and the compile
// endpoint's guard clauses.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestRespondJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Errorf("got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body: got %v", body)
	}
}

func TestRespondErrorShape(t *testing.T) {
	rec := httptest.NewRecorder()
	respondErrorDetails(rec, http.StatusBadRequest, "validation failed", "title: cannot be blank")

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error != "validation failed" {
		t.Errorf("error: got %q", body.Error)
	}
	if body.Details != "title: cannot be blank" {
		t.Errorf("details: got %q", body.Details)
	}

	// Details must be omitted entirely when empty.
	rec = httptest.NewRecorder()
	respondError(rec, http.StatusNotFound, "not found")
	if strings.Contains(rec.Body.String(), "details") {
		t.Errorf("empty details should be omitted: %s", rec.Body.String())
	}
}

// routeRequest builds a request carrying a chi URL parameter, the way the
// router delivers it.
func routeRequest(param, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestURLUUID(t *testing.T) {
	id := uuid.New()
	got, ok := urlUUID(routeRequest("id", id.String()), "id")
	if !ok || got != id {
		t.Errorf("valid uuid: got %v ok=%v", got, ok)
	}

	if _, ok := urlUUID(routeRequest("id", "not-a-uuid"), "id"); ok {
		t.Error("malformed uuid should not parse")
	}
	if _, ok := urlUUID(httptest.NewRequest(http.MethodGet, "/", nil), "id"); ok {
		t.Error("missing param should not parse")
	}
}

func TestCreatePostRequestValidation(t *testing.T) {
	valid := createPostRequest{
		Title:       "Treaty of Versailles Signed",
		Content:     "The treaty formally ended the war.",
		DateOfEvent: "1919-06-28",
		Status:      "published",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	missing := valid
	missing.Title = ""
	if err := missing.Validate(); err == nil {
		t.Error("missing title should fail")
	}

	badDate := valid
	badDate.DateOfEvent = "June 28, 1919"
	if err := badDate.Validate(); err == nil {
		t.Error("non-ISO date should fail")
	}

	badStatus := valid
	badStatus.Status = "archived"
	if err := badStatus.Validate(); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestCreateGoalRequestValidation(t *testing.T) {
	valid := createGoalRequest{ManuscriptID: uuid.New(), Type: "daily"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	badType := valid
	badType.Type = "yearly"
	if err := badType.Validate(); err == nil {
		t.Error("unknown goal type should fail")
	}

	deadline := "2026-12-31"
	withDeadline := valid
	withDeadline.Deadline = &deadline
	if err := withDeadline.Validate(); err != nil {
		t.Errorf("ISO deadline rejected: %v", err)
	}
}

func TestPreviewRendersMarkdown(t *testing.T) {
	h := NewPosts(nil, nil, nil, nil)

	body := strings.NewReader(`{"content":"# Heading\n\nSome **bold** text."}`)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/preview", body)
	rec := httptest.NewRecorder()
	h.Preview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(resp["html"], "<h1") || !strings.Contains(resp["html"], "<strong>bold</strong>") {
		t.Errorf("rendered html missing expected markup: %s", resp["html"])
	}
}

func TestCompileRunGuards(t *testing.T) {
	h := NewCompile(nil, nil, t.TempDir(), "/books", nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/book/compile", strings.NewReader(`{"author":"A. Historian"}`))
	rec := httptest.NewRecorder()
	h.Run(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Title and author are required") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/book/compile", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	h.Run(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: got %d, want 400", rec.Code)
	}
}

func TestCompileStatus(t *testing.T) {
	h := NewCompile(nil, nil, t.TempDir(), "/books", nil, nil)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/book/compile", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing jobId: got %d, want 400", rec.Code)
	}

	// Without a cache an unknown job reports terminal completion.
	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/book/compile?jobId=abc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"stage":"complete"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestIntParam(t *testing.T) {
	if got := intParam("", 50); got != 50 {
		t.Errorf("empty: got %d", got)
	}
	if got := intParam("25", 50); got != 25 {
		t.Errorf("numeric: got %d", got)
	}
	if got := intParam("-1", 50); got != 50 {
		t.Errorf("negative falls back: got %d", got)
	}
	if got := intParam("abc", 50); got != 50 {
		t.Errorf("junk falls back: got %d", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200); got != "short" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := truncate(long, 200); len(got) != 200 {
		t.Errorf("got len %d, want 200", len(got))
	}

	// A multi-byte rune straddling the cut is dropped whole, never split.
	accented := strings.Repeat("x", 199) + "é tail"
	got := truncate(accented, 200)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated excerpt is not valid UTF-8: %q", got)
	}
	if len(got) != 199 || !strings.HasSuffix(got, "x") {
		t.Errorf("got len %d ending %q, want cut at rune boundary", len(got), got[len(got)-1:])
	}
}
