// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Image is a file attached to exactly one post. Only the metadata row lives
// here; the file itself is written by the upload pipeline outside this
// service. IsHero marks the post's lead image — at most one per post is
// intended, but this is enforced by the store, not a constraint.
type Image struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"postId"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Alt          string    `json:"alt"`
	Caption      string    `json:"caption"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	IsHero       bool      `json:"isHero"`
	SortOrder    int       `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`

	// URL is derived from Filename when serializing; not persisted.
	URL string `json:"url,omitempty"`
}

// IsImage reports whether the MIME type is an image type. Non-image
// attachments are allowed but skipped by the book renderer.
func (i *Image) IsImage() bool {
	return strings.HasPrefix(i.MimeType, "image/")
}

// HumanSize returns a human-readable file size string.
func (i *Image) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case i.Size >= mb:
		return fmt.Sprintf("%.1f MB", float64(i.Size)/float64(mb))
	case i.Size >= kb:
		return fmt.Sprintf("%.0f KB", float64(i.Size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", i.Size)
	}
}
