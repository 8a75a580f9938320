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

// TagStore handles tag database operations.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// List returns all tags ordered by name.
func (s *TagStore) List() ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT id, name, slug, description, color
		FROM tags
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Create inserts a new tag and returns it with the generated ID.
func (s *TagStore) Create(t *models.Tag) (*models.Tag, error) {
	result := &models.Tag{}
	err := s.db.QueryRow(`
		INSERT INTO tags (name, slug, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, description, color
	`, t.Name, t.Slug, t.Description, t.Color).Scan(
		&result.ID, &result.Name, &result.Slug, &result.Description, &result.Color,
	)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return result, nil
}

// Delete removes a tag. Post links cascade.
func (s *TagStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
