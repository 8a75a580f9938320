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

// ImageStore handles image metadata database operations. The files
// themselves are managed by the upload pipeline, not this service.
type ImageStore struct {
	db *sql.DB
}

// NewImageStore creates a new ImageStore with the given database connection.
func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

const imageColumns = `id, post_id, filename, original_name, alt, caption,
       size, mime_type, width, height, is_hero, sort_order, created_at`

func scanImage(row interface{ Scan(...any) error }) (*models.Image, error) {
	img := &models.Image{}
	err := row.Scan(
		&img.ID, &img.PostID, &img.Filename, &img.OriginalName, &img.Alt,
		&img.Caption, &img.Size, &img.MimeType, &img.Width, &img.Height,
		&img.IsHero, &img.SortOrder, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ListByPost returns a post's images ordered by sort order, then creation.
func (s *ImageStore) ListByPost(postID uuid.UUID) ([]models.Image, error) {
	rows, err := s.db.Query(`
		SELECT `+imageColumns+`
		FROM images
		WHERE post_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

// FindByID retrieves an image by its UUID. Returns nil if not found.
func (s *ImageStore) FindByID(id uuid.UUID) (*models.Image, error) {
	img, err := scanImage(s.db.QueryRow(
		`SELECT `+imageColumns+` FROM images WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find image by id: %w", err)
	}
	return img, nil
}

// Create inserts a new image metadata row and returns it.
func (s *ImageStore) Create(img *models.Image) (*models.Image, error) {
	created, err := scanImage(s.db.QueryRow(`
		INSERT INTO images (post_id, filename, original_name, alt, caption,
		                    size, mime_type, width, height, is_hero, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+imageColumns,
		img.PostID, img.Filename, img.OriginalName, img.Alt, img.Caption,
		img.Size, img.MimeType, img.Width, img.Height, img.IsHero, img.SortOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return created, nil
}

// Update modifies an image's editable metadata fields.
func (s *ImageStore) Update(img *models.Image) error {
	// Promoting to hero clears siblings first so at most one hero remains.
	// Not constraint-enforced; concurrent promotions can still race.
	if img.IsHero {
		if _, err := s.db.Exec(
			`UPDATE images SET is_hero = FALSE WHERE post_id = $1 AND id <> $2`,
			img.PostID, img.ID,
		); err != nil {
			return fmt.Errorf("clear hero images: %w", err)
		}
	}

	res, err := s.db.Exec(`
		UPDATE images SET alt = $1, caption = $2, is_hero = $3, sort_order = $4
		WHERE id = $5
	`, img.Alt, img.Caption, img.IsHero, img.SortOrder, img.ID)
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an image metadata row.
func (s *ImageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
