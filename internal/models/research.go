// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceType classifies where a research note came from.
type ReferenceType string

const (
	ReferenceTypeWeb       ReferenceType = "web"
	ReferenceTypeBook      ReferenceType = "book"
	ReferenceTypeArticle   ReferenceType = "article"
	ReferenceTypeInterview ReferenceType = "interview"
	ReferenceTypeDocument  ReferenceType = "document"
	ReferenceTypeImage     ReferenceType = "image"
)

// ResearchReference is a manuscript-scoped research note. Tags is a
// comma-separated list used for client-side filtering; IsPinned floats the
// reference to the top of listings.
type ResearchReference struct {
	ID           uuid.UUID     `json:"id"`
	ManuscriptID uuid.UUID     `json:"manuscriptId"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Source       *string       `json:"source,omitempty"`
	Type         ReferenceType `json:"type"`
	Tags         *string       `json:"tags,omitempty"`
	IsPinned     bool          `json:"isPinned"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
