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

// ResearchStore handles research reference database operations.
type ResearchStore struct {
	db *sql.DB
}

// NewResearchStore creates a new ResearchStore with the given database connection.
func NewResearchStore(db *sql.DB) *ResearchStore {
	return &ResearchStore{db: db}
}

const researchColumns = `id, manuscript_id, title, content, source, type,
       tags, is_pinned, created_at, updated_at`

func scanResearch(row interface{ Scan(...any) error }) (*models.ResearchReference, error) {
	r := &models.ResearchReference{}
	err := row.Scan(
		&r.ID, &r.ManuscriptID, &r.Title, &r.Content, &r.Source, &r.Type,
		&r.Tags, &r.IsPinned, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListByManuscript returns a manuscript's references, pinned first, then
// newest first.
func (s *ResearchStore) ListByManuscript(manuscriptID uuid.UUID) ([]models.ResearchReference, error) {
	rows, err := s.db.Query(`
		SELECT `+researchColumns+`
		FROM research_references
		WHERE manuscript_id = $1
		ORDER BY is_pinned DESC, created_at DESC
	`, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("list research references: %w", err)
	}
	defer rows.Close()

	refs := []models.ResearchReference{}
	for rows.Next() {
		r, err := scanResearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan research reference: %w", err)
		}
		refs = append(refs, *r)
	}
	return refs, rows.Err()
}

// FindByID retrieves a reference by its UUID. Returns nil if not found.
func (s *ResearchStore) FindByID(id uuid.UUID) (*models.ResearchReference, error) {
	r, err := scanResearch(s.db.QueryRow(
		`SELECT `+researchColumns+` FROM research_references WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find research reference by id: %w", err)
	}
	return r, nil
}

// Create inserts a new reference and returns it with the generated ID.
func (s *ResearchStore) Create(r *models.ResearchReference) (*models.ResearchReference, error) {
	created, err := scanResearch(s.db.QueryRow(`
		INSERT INTO research_references (manuscript_id, title, content, source,
		                                 type, tags, is_pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+researchColumns,
		r.ManuscriptID, r.Title, r.Content, r.Source, r.Type, r.Tags, r.IsPinned,
	))
	if err != nil {
		return nil, fmt.Errorf("create research reference: %w", err)
	}
	return created, nil
}

// Update modifies an existing reference.
func (s *ResearchStore) Update(r *models.ResearchReference) error {
	res, err := s.db.Exec(`
		UPDATE research_references SET
			title = $1, content = $2, source = $3, type = $4,
			tags = $5, is_pinned = $6, updated_at = NOW()
		WHERE id = $7
	`, r.Title, r.Content, r.Source, r.Type, r.Tags, r.IsPinned, r.ID)
	if err != nil {
		return fmt.Errorf("update research reference: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a reference.
func (s *ResearchStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM research_references WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete research reference: %w", err)
	}
	return nil
}
