// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// CategoryType groups categories into the three labeling axes used by the
// event browser: what happened, when, and where.
type CategoryType string

const (
	CategoryTypeEventType CategoryType = "event_type"
	CategoryTypeEra       CategoryType = "era"
	CategoryTypeRegion    CategoryType = "region"
)

// Category is a labeling entity attached to posts via a join table.
// There is no hierarchy; Type is a flat grouping.
type Category struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description *string      `json:"description,omitempty"`
	Type        CategoryType `json:"type"`
	Color       string       `json:"color"`
}

// Tag is a free-form label attached to posts via a join table.
type Tag struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
}
