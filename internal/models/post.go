// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post represents a single historical-event entry. DateOfEvent is stored as
// YYYY-MM-DD; YearOfEvent is derived from it at creation time and never
// recomputed afterwards, even if the date is edited.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	DateOfEvent string     `json:"dateOfEvent"`
	YearOfEvent int        `json:"yearOfEvent"`
	Slug        string     `json:"slug"`
	Status      PostStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostWithRelations is a post enriched with its labels and images, as
// returned by the post detail endpoint and consumed by the book compiler.
type PostWithRelations struct {
	Post
	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags"`
	Images     []Image    `json:"images,omitempty"`
}
