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

// ManuscriptStore handles manuscript database operations.
type ManuscriptStore struct {
	db *sql.DB
}

// NewManuscriptStore creates a new ManuscriptStore with the given database connection.
func NewManuscriptStore(db *sql.DB) *ManuscriptStore {
	return &ManuscriptStore{db: db}
}

const manuscriptColumns = `id, title, description, status, word_count,
       target_word_count, settings, created_at, updated_at`

func scanManuscript(row interface{ Scan(...any) error }) (*models.Manuscript, error) {
	m := &models.Manuscript{}
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Status, &m.WordCount,
		&m.TargetWordCount, &m.Settings, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns all manuscripts ordered by creation time descending.
func (s *ManuscriptStore) List() ([]models.Manuscript, error) {
	rows, err := s.db.Query(
		`SELECT ` + manuscriptColumns + ` FROM manuscripts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list manuscripts: %w", err)
	}
	defer rows.Close()

	var manuscripts []models.Manuscript
	for rows.Next() {
		m, err := scanManuscript(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manuscript: %w", err)
		}
		manuscripts = append(manuscripts, *m)
	}
	return manuscripts, rows.Err()
}

// FindByID retrieves a manuscript by its UUID. Returns nil if not found.
func (s *ManuscriptStore) FindByID(id uuid.UUID) (*models.Manuscript, error) {
	m, err := scanManuscript(s.db.QueryRow(
		`SELECT `+manuscriptColumns+` FROM manuscripts WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find manuscript by id: %w", err)
	}
	return m, nil
}

// Create inserts a new manuscript and returns it with the generated ID.
func (s *ManuscriptStore) Create(m *models.Manuscript) (*models.Manuscript, error) {
	created, err := scanManuscript(s.db.QueryRow(`
		INSERT INTO manuscripts (title, description, status, target_word_count)
		VALUES ($1, $2, $3, $4)
		RETURNING `+manuscriptColumns,
		m.Title, m.Description, m.Status, m.TargetWordCount,
	))
	if err != nil {
		return nil, fmt.Errorf("create manuscript: %w", err)
	}
	return created, nil
}

// Update modifies an existing manuscript.
func (s *ManuscriptStore) Update(m *models.Manuscript) error {
	res, err := s.db.Exec(`
		UPDATE manuscripts SET
			title = $1, description = $2, status = $3, word_count = $4,
			target_word_count = $5, settings = $6, updated_at = NOW()
		WHERE id = $7
	`, m.Title, m.Description, m.Status, m.WordCount, m.TargetWordCount, m.Settings, m.ID)
	if err != nil {
		return fmt.Errorf("update manuscript: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a manuscript. Sections and all dependent rows cascade.
func (s *ManuscriptStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM manuscripts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete manuscript: %w", err)
	}
	return nil
}

// SaveCompiledBook overwrites the manuscript's title, word count, and
// settings blob with the compiled book payload and marks it completed.
// Returns the updated manuscript, or nil when the manuscript is missing.
func (s *ManuscriptStore) SaveCompiledBook(id uuid.UUID, title string, wordCount int, settings string) (*models.Manuscript, error) {
	m, err := scanManuscript(s.db.QueryRow(`
		UPDATE manuscripts SET
			title = $1, word_count = $2, status = 'completed',
			settings = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+manuscriptColumns,
		title, wordCount, settings, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("save compiled book: %w", err)
	}
	return m, nil
}
