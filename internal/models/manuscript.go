// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ManuscriptStatus represents the lifecycle state of a writing project.
type ManuscriptStatus string

const (
	ManuscriptStatusDraft      ManuscriptStatus = "draft"
	ManuscriptStatusInProgress ManuscriptStatus = "in_progress"
	ManuscriptStatusCompleted  ManuscriptStatus = "completed"
)

// Manuscript is a writing project grouping sections for eventual compilation.
// Settings is a free-form JSON blob; among other things the save-book
// endpoint stashes the last compiled book's HTML in it.
type Manuscript struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description,omitempty"`
	Status          ManuscriptStatus `json:"status"`
	WordCount       int              `json:"wordCount"`
	TargetWordCount *int             `json:"targetWordCount,omitempty"`
	Settings        *string          `json:"settings,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// SavedBook is the shape the save-book endpoint writes into the manuscript
// settings blob. There is no schema versioning on this structure.
type SavedBook struct {
	CompiledBookContent string `json:"compiledBookContent"`
	LastCompiled        string `json:"lastCompiled"`
	ContentType         string `json:"contentType"`
}

// SavedBookFromSettings parses the saved compiled book out of a settings
// blob. Returns nil when settings is empty or does not contain one.
func SavedBookFromSettings(settings *string) *SavedBook {
	if settings == nil || *settings == "" {
		return nil
	}
	var sb SavedBook
	if err := json.Unmarshal([]byte(*settings), &sb); err != nil {
		return nil
	}
	if sb.CompiledBookContent == "" {
		return nil
	}
	return &sb
}
