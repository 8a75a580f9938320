// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentType distinguishes inline annotation kinds in the editor margin.
type CommentType string

const (
	CommentTypeComment    CommentType = "comment"
	CommentTypeAnnotation CommentType = "annotation"
	CommentTypeRevision   CommentType = "revision"
	CommentTypeHighlight  CommentType = "highlight"
)

// CommentStatus tracks whether an annotation still needs attention.
type CommentStatus string

const (
	CommentStatusOpen     CommentStatus = "open"
	CommentStatusResolved CommentStatus = "resolved"
	CommentStatusArchived CommentStatus = "archived"
)

// Comment is an inline annotation anchored to a character position inside a
// section's content. Length covers the highlighted span (0 for point notes).
type Comment struct {
	ID           uuid.UUID     `json:"id"`
	SectionID    uuid.UUID     `json:"sectionId"`
	ManuscriptID uuid.UUID     `json:"manuscriptId"`
	Content      string        `json:"content"`
	Position     int           `json:"position"`
	Length       int           `json:"length"`
	Type         CommentType   `json:"type"`
	Status       CommentStatus `json:"status"`
	Color        string        `json:"color"`
	AuthorNote   *string       `json:"authorNote,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Snapshot is a point-in-time capture of a section's title and content.
// Versions are assigned monotonically per section by the store.
type Snapshot struct {
	ID           uuid.UUID `json:"id"`
	SectionID    uuid.UUID `json:"sectionId"`
	ManuscriptID uuid.UUID `json:"manuscriptId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	WordCount    int       `json:"wordCount"`
	Version      int       `json:"version"`
	Description  *string   `json:"description,omitempty"`
	IsAutomatic  bool      `json:"isAutomatic"`
	CreatedAt    time.Time `json:"createdAt"`
}
