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

// CommentStore handles inline annotation database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, section_id, manuscript_id, content, position,
       length, type, status, color, author_note, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(
		&c.ID, &c.SectionID, &c.ManuscriptID, &c.Content, &c.Position,
		&c.Length, &c.Type, &c.Status, &c.Color, &c.AuthorNote,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListBySection returns a section's annotations ordered by their anchor
// position in the text.
func (s *CommentStore) ListBySection(sectionID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE section_id = $1
		ORDER BY position ASC, created_at ASC
	`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c, err := scanComment(s.db.QueryRow(
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and returns it with the generated ID.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	created, err := scanComment(s.db.QueryRow(`
		INSERT INTO comments (section_id, manuscript_id, content, position,
		                      length, type, status, color, author_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+commentColumns,
		c.SectionID, c.ManuscriptID, c.Content, c.Position, c.Length,
		c.Type, c.Status, c.Color, c.AuthorNote,
	))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// Update modifies a comment's content, status, and presentation fields.
func (s *CommentStore) Update(c *models.Comment) error {
	res, err := s.db.Exec(`
		UPDATE comments SET
			content = $1, position = $2, length = $3, type = $4,
			status = $5, color = $6, author_note = $7, updated_at = NOW()
		WHERE id = $8
	`, c.Content, c.Position, c.Length, c.Type, c.Status, c.Color, c.AuthorNote, c.ID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a comment.
func (s *CommentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
