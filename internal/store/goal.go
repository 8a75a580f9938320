// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

// GoalStore handles writing goal database operations.
type GoalStore struct {
	db *sql.DB
}

// NewGoalStore creates a new GoalStore with the given database connection.
func NewGoalStore(db *sql.DB) *GoalStore {
	return &GoalStore{db: db}
}

const goalColumns = `id, manuscript_id, section_id, type, target_words,
       target_characters, target_time, deadline, is_active, created_at`

func scanGoal(row interface{ Scan(...any) error }) (*models.WritingGoal, error) {
	g := &models.WritingGoal{}
	err := row.Scan(
		&g.ID, &g.ManuscriptID, &g.SectionID, &g.Type, &g.TargetWords,
		&g.TargetCharacters, &g.TargetTime, &g.Deadline, &g.IsActive, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListByManuscript returns a manuscript's active goals, newest first.
func (s *GoalStore) ListByManuscript(manuscriptID uuid.UUID) ([]models.WritingGoal, error) {
	rows, err := s.db.Query(`
		SELECT `+goalColumns+`
		FROM writing_goals
		WHERE manuscript_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.WritingGoal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// Create inserts a new goal and returns it with the generated ID.
func (s *GoalStore) Create(g *models.WritingGoal) (*models.WritingGoal, error) {
	created, err := scanGoal(s.db.QueryRow(`
		INSERT INTO writing_goals (manuscript_id, section_id, type, target_words,
		                           target_characters, target_time, deadline, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+goalColumns,
		g.ManuscriptID, g.SectionID, g.Type, g.TargetWords,
		g.TargetCharacters, g.TargetTime, g.Deadline, g.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return created, nil
}

// Deactivate retires a goal without deleting its history.
func (s *GoalStore) Deactivate(id uuid.UUID) error {
	res, err := s.db.Exec(
		`UPDATE writing_goals SET is_active = FALSE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
