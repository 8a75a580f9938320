// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

// SessionStore handles writing session database operations.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new SessionStore with the given database connection.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

const sessionColumns = `id, manuscript_id, section_id, words_written,
       characters_written, time_spent, started_at, ended_at,
       session_goal, goal_achieved`

func scanSession(row interface{ Scan(...any) error }) (*models.WritingSession, error) {
	ws := &models.WritingSession{}
	err := row.Scan(
		&ws.ID, &ws.ManuscriptID, &ws.SectionID, &ws.WordsWritten,
		&ws.CharactersWritten, &ws.TimeSpent, &ws.StartedAt, &ws.EndedAt,
		&ws.SessionGoal, &ws.GoalAchieved,
	)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// ListByManuscript returns a manuscript's sessions, most recent first.
func (s *SessionStore) ListByManuscript(manuscriptID uuid.UUID, limit int) ([]models.WritingSession, error) {
	rows, err := s.db.Query(`
		SELECT `+sessionColumns+`
		FROM writing_sessions
		WHERE manuscript_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`, manuscriptID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.WritingSession{}
	for rows.Next() {
		ws, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *ws)
	}
	return sessions, rows.Err()
}

// Create records a completed session. GoalAchieved is computed by the
// caller against the session goal, if one was set.
func (s *SessionStore) Create(ws *models.WritingSession) (*models.WritingSession, error) {
	created, err := scanSession(s.db.QueryRow(`
		INSERT INTO writing_sessions (manuscript_id, section_id, words_written,
			characters_written, time_spent, started_at, ended_at,
			session_goal, goal_achieved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+sessionColumns,
		ws.ManuscriptID, ws.SectionID, ws.WordsWritten, ws.CharactersWritten,
		ws.TimeSpent, ws.StartedAt, ws.EndedAt, ws.SessionGoal, ws.GoalAchieved,
	))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return created, nil
}

// StatsForDay aggregates a manuscript's sessions that started within the
// given UTC calendar day.
func (s *SessionStore) StatsForDay(manuscriptID uuid.UUID, day time.Time) (*models.WritingStats, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	stats := &models.WritingStats{}
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(words_written), 0),
		       COALESCE(SUM(characters_written), 0),
		       COALESCE(SUM(time_spent), 0),
		       COUNT(*)
		FROM writing_sessions
		WHERE manuscript_id = $1 AND started_at >= $2 AND started_at < $3
	`, manuscriptID, start, end).Scan(
		&stats.WordsWritten, &stats.CharactersWritten,
		&stats.TimeSpent, &stats.SessionsCount,
	)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}
