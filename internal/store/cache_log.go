// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CacheLogStore records entity mutations so external cache layers can
// replay invalidations.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore with the given database connection.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// Record logs a mutation. entityType names the table ("posts", "manuscripts"),
// action is "create", "update", or "delete".
func (s *CacheLogStore) Record(entityType string, entityID uuid.UUID, action string) error {
	_, err := s.db.Exec(`
		INSERT INTO cache_invalidation_log (entity_type, entity_id, action)
		VALUES ($1, $2, $3)
	`, entityType, entityID, action)
	if err != nil {
		return fmt.Errorf("record cache invalidation: %w", err)
	}
	return nil
}
