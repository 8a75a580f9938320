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

// SnapshotStore handles section version snapshot database operations.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore creates a new SnapshotStore with the given database connection.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

const snapshotColumns = `id, section_id, manuscript_id, title, content,
       word_count, version, description, is_automatic, created_at`

func scanSnapshot(row interface{ Scan(...any) error }) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	err := row.Scan(
		&snap.ID, &snap.SectionID, &snap.ManuscriptID, &snap.Title,
		&snap.Content, &snap.WordCount, &snap.Version, &snap.Description,
		&snap.IsAutomatic, &snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListBySection returns a section's snapshots, newest version first.
func (s *SnapshotStore) ListBySection(sectionID uuid.UUID) ([]models.Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE section_id = $1
		ORDER BY version DESC
	`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, *snap)
	}
	return snapshots, rows.Err()
}

// FindByID retrieves a snapshot by its UUID. Returns nil if not found.
func (s *SnapshotStore) FindByID(id uuid.UUID) (*models.Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM snapshots WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot by id: %w", err)
	}
	return snap, nil
}

// Create captures a snapshot, assigning the next version number for the
// section in the same statement so versions stay monotonic.
func (s *SnapshotStore) Create(snap *models.Snapshot) (*models.Snapshot, error) {
	created, err := scanSnapshot(s.db.QueryRow(`
		INSERT INTO snapshots (section_id, manuscript_id, title, content,
		                       word_count, version, description, is_automatic)
		VALUES ($1, $2, $3, $4, $5,
		        (SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE section_id = $1),
		        $6, $7)
		RETURNING `+snapshotColumns,
		snap.SectionID, snap.ManuscriptID, snap.Title, snap.Content,
		snap.WordCount, snap.Description, snap.IsAutomatic,
	))
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	return created, nil
}

// Delete removes a snapshot.
func (s *SnapshotStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
