// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// WritingSession records one sitting's output against a manuscript, and
// optionally a specific section. TimeSpent is minutes.
type WritingSession struct {
	ID                uuid.UUID  `json:"id"`
	ManuscriptID      uuid.UUID  `json:"manuscriptId"`
	SectionID         *uuid.UUID `json:"sectionId,omitempty"`
	WordsWritten      int        `json:"wordsWritten"`
	CharactersWritten int        `json:"charactersWritten"`
	TimeSpent         int        `json:"timeSpent"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           time.Time  `json:"endedAt"`
	SessionGoal       *int       `json:"sessionGoal,omitempty"`
	GoalAchieved      bool       `json:"goalAchieved"`
}

// GoalType scopes a writing goal in time.
type GoalType string

const (
	GoalTypeDaily   GoalType = "daily"
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeTotal   GoalType = "total"
	GoalTypeSession GoalType = "session"
)

// WritingGoal is a manuscript- or section-scoped target. SectionID is nil
// for manuscript-wide goals. Deadline is YYYY-MM-DD.
type WritingGoal struct {
	ID               uuid.UUID  `json:"id"`
	ManuscriptID     uuid.UUID  `json:"manuscriptId"`
	SectionID        *uuid.UUID `json:"sectionId,omitempty"`
	Type             GoalType   `json:"type"`
	TargetWords      *int       `json:"targetWords,omitempty"`
	TargetCharacters *int       `json:"targetCharacters,omitempty"`
	TargetTime       *int       `json:"targetTime,omitempty"`
	Deadline         *string    `json:"deadline,omitempty"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// WritingStats aggregates a day's sessions for the stats endpoint.
type WritingStats struct {
	WordsWritten      int `json:"wordsWritten"`
	CharactersWritten int `json:"charactersWritten"`
	TimeSpent         int `json:"timeSpent"`
	SessionsCount     int `json:"sessionsCount"`
}
