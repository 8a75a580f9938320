// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection groups related sections within a manuscript, independent of
// storyboard order. Smart collections carry a filter JSON evaluated by the
// client; the server only stores it.
type Collection struct {
	ID                uuid.UUID `json:"id"`
	ManuscriptID      uuid.UUID `json:"manuscriptId"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	Color             string    `json:"color"`
	IsSmartCollection bool      `json:"isSmartCollection"`
	SmartFilters      *string   `json:"smartFilters,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`

	// Populated by list queries.
	SectionCount int         `json:"sectionCount"`
	SectionIDs   []uuid.UUID `json:"sectionIds"`
}
