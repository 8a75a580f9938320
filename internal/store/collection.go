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

// CollectionStore handles section collection database operations.
type CollectionStore struct {
	db *sql.DB
}

// NewCollectionStore creates a new CollectionStore with the given database connection.
func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

const collectionColumns = `id, manuscript_id, name, description, color,
       is_smart_collection, smart_filters, created_at`

func scanCollection(row interface{ Scan(...any) error }) (*models.Collection, error) {
	c := &models.Collection{}
	err := row.Scan(
		&c.ID, &c.ManuscriptID, &c.Name, &c.Description, &c.Color,
		&c.IsSmartCollection, &c.SmartFilters, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByManuscript returns a manuscript's collections with member counts
// and member section IDs populated.
func (s *CollectionStore) ListByManuscript(manuscriptID uuid.UUID) ([]models.Collection, error) {
	rows, err := s.db.Query(`
		SELECT `+collectionColumns+`
		FROM collections
		WHERE manuscript_id = $1
		ORDER BY created_at ASC
	`, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range collections {
		ids, err := s.sectionIDs(collections[i].ID)
		if err != nil {
			return nil, err
		}
		collections[i].SectionIDs = ids
		collections[i].SectionCount = len(ids)
	}
	return collections, nil
}

// FindByID retrieves a collection with its members. Returns nil if not found.
func (s *CollectionStore) FindByID(id uuid.UUID) (*models.Collection, error) {
	c, err := scanCollection(s.db.QueryRow(
		`SELECT `+collectionColumns+` FROM collections WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection by id: %w", err)
	}
	ids, err := s.sectionIDs(c.ID)
	if err != nil {
		return nil, err
	}
	c.SectionIDs = ids
	c.SectionCount = len(ids)
	return c, nil
}

func (s *CollectionStore) sectionIDs(collectionID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(
		`SELECT section_id FROM collection_items WHERE collection_id = $1`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list collection items: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan collection item: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new collection and returns it with the generated ID.
func (s *CollectionStore) Create(c *models.Collection) (*models.Collection, error) {
	created, err := scanCollection(s.db.QueryRow(`
		INSERT INTO collections (manuscript_id, name, description, color,
		                         is_smart_collection, smart_filters)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+collectionColumns,
		c.ManuscriptID, c.Name, c.Description, c.Color,
		c.IsSmartCollection, c.SmartFilters,
	))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	created.SectionIDs = []uuid.UUID{}
	return created, nil
}

// Update modifies a collection's metadata. Membership changes go through
// AddItem and RemoveItem.
func (s *CollectionStore) Update(c *models.Collection) error {
	res, err := s.db.Exec(`
		UPDATE collections SET
			name = $1, description = $2, color = $3,
			is_smart_collection = $4, smart_filters = $5
		WHERE id = $6
	`, c.Name, c.Description, c.Color, c.IsSmartCollection, c.SmartFilters, c.ID)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a collection. Its membership rows cascade.
func (s *CollectionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// AddItem links a section to a collection. Adding an existing member is a
// no-op.
func (s *CollectionStore) AddItem(collectionID, sectionID uuid.UUID) error {
	_, err := s.db.Exec(`
		INSERT INTO collection_items (collection_id, section_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, collectionID, sectionID)
	if err != nil {
		return fmt.Errorf("add collection item: %w", err)
	}
	return nil
}

// RemoveItem unlinks a section from a collection.
func (s *CollectionStore) RemoveItem(collectionID, sectionID uuid.UUID) error {
	_, err := s.db.Exec(
		`DELETE FROM collection_items WHERE collection_id = $1 AND section_id = $2`,
		collectionID, sectionID,
	)
	if err != nil {
		return fmt.Errorf("remove collection item: %w", err)
	}
	return nil
}
