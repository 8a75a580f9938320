// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SectionType classifies storyboard nodes. Only "document" sections take
// part in book compilation; the rest are organizational.
type SectionType string

const (
	SectionTypeFolder          SectionType = "folder"
	SectionTypeDocument        SectionType = "document"
	SectionTypeNote            SectionType = "note"
	SectionTypeResearch        SectionType = "research"
	SectionTypeCharacter       SectionType = "character"
	SectionTypeLocation        SectionType = "location"
	SectionTypeScene           SectionType = "scene"
	SectionTypeHistoricalEvent SectionType = "historical_event"
)

// Section is an ordered node within a manuscript. It may link to a post
// (PostID), in which case the post's fields win at compile time; otherwise
// the section carries its own copies of title/content/date. Deleting the
// linked post nulls PostID and leaves the copies intact.
//
// SortOrder determines storyboard and compile order. Siblings are not
// required to be contiguous — reorders leave gaps.
type Section struct {
	ID                uuid.UUID   `json:"id"`
	ManuscriptID      uuid.UUID   `json:"manuscriptId"`
	ParentID          *uuid.UUID  `json:"parentId,omitempty"`
	PostID            *uuid.UUID  `json:"postId,omitempty"`
	Title             string      `json:"title"`
	Content           string      `json:"content"`
	Synopsis          *string     `json:"synopsis,omitempty"`
	Type              SectionType `json:"type"`
	SortOrder         int         `json:"sortOrder"`
	WordCount         int         `json:"wordCount"`
	TargetWordCount   *int        `json:"targetWordCount,omitempty"`
	IncludeInCompile  bool        `json:"includeInCompile"`
	Notes             *string     `json:"notes,omitempty"`
	Status            string      `json:"status"`
	Label             *string     `json:"label,omitempty"`
	Keywords          *string     `json:"keywords,omitempty"`
	CustomIcon        *string     `json:"customIcon,omitempty"`
	DateOfEvent       *string     `json:"dateOfEvent,omitempty"`
	Metadata          *string     `json:"metadata,omitempty"`
	CorkboardPosition *string     `json:"corkboardPosition,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// CountWords returns the whitespace-separated word count of a content body.
// Used to keep Section.WordCount current on create/update.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
