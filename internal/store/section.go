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

// SectionStore handles storyboard section database operations.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

const sectionColumns = `id, manuscript_id, parent_id, post_id, title, content,
       synopsis, type, sort_order, word_count, target_word_count,
       include_in_compile, notes, status, label, keywords, custom_icon,
       date_of_event, metadata, corkboard_position, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (*models.Section, error) {
	sec := &models.Section{}
	err := row.Scan(
		&sec.ID, &sec.ManuscriptID, &sec.ParentID, &sec.PostID, &sec.Title,
		&sec.Content, &sec.Synopsis, &sec.Type, &sec.SortOrder, &sec.WordCount,
		&sec.TargetWordCount, &sec.IncludeInCompile, &sec.Notes, &sec.Status,
		&sec.Label, &sec.Keywords, &sec.CustomIcon, &sec.DateOfEvent,
		&sec.Metadata, &sec.CorkboardPosition, &sec.CreatedAt, &sec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sec, nil
}

// ListByManuscript returns a manuscript's sections in storyboard order
// (sort_order, then creation time for ties).
func (s *SectionStore) ListByManuscript(manuscriptID uuid.UUID) ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT `+sectionColumns+`
		FROM sections
		WHERE manuscript_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, *sec)
	}
	return sections, rows.Err()
}

// FindByID retrieves a section by its UUID. Returns nil if not found.
func (s *SectionStore) FindByID(id uuid.UUID) (*models.Section, error) {
	sec, err := scanSection(s.db.QueryRow(
		`SELECT `+sectionColumns+` FROM sections WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return sec, nil
}

// Create inserts a new section and returns it with the generated ID.
func (s *SectionStore) Create(sec *models.Section) (*models.Section, error) {
	created, err := scanSection(s.db.QueryRow(`
		INSERT INTO sections (manuscript_id, parent_id, post_id, title, content,
			synopsis, type, sort_order, word_count, target_word_count,
			include_in_compile, notes, status, label, keywords, custom_icon,
			date_of_event, metadata, corkboard_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING `+sectionColumns,
		sec.ManuscriptID, sec.ParentID, sec.PostID, sec.Title, sec.Content,
		sec.Synopsis, sec.Type, sec.SortOrder, sec.WordCount, sec.TargetWordCount,
		sec.IncludeInCompile, sec.Notes, sec.Status, sec.Label, sec.Keywords,
		sec.CustomIcon, sec.DateOfEvent, sec.Metadata, sec.CorkboardPosition,
	))
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return created, nil
}

// Update modifies an existing section. Word count is written as provided;
// callers recompute it from content.
func (s *SectionStore) Update(sec *models.Section) error {
	res, err := s.db.Exec(`
		UPDATE sections SET
			parent_id = $1, post_id = $2, title = $3, content = $4,
			synopsis = $5, type = $6, sort_order = $7, word_count = $8,
			target_word_count = $9, include_in_compile = $10, notes = $11,
			status = $12, label = $13, keywords = $14, custom_icon = $15,
			date_of_event = $16, metadata = $17, corkboard_position = $18,
			updated_at = NOW()
		WHERE id = $19
	`, sec.ParentID, sec.PostID, sec.Title, sec.Content, sec.Synopsis,
		sec.Type, sec.SortOrder, sec.WordCount, sec.TargetWordCount,
		sec.IncludeInCompile, sec.Notes, sec.Status, sec.Label, sec.Keywords,
		sec.CustomIcon, sec.DateOfEvent, sec.Metadata, sec.CorkboardPosition, sec.ID)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a section. Snapshots, comments, and collection items cascade.
func (s *SectionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

// SectionWithPost pairs a section with its optionally linked post, as
// produced by the compile fetch query.
type SectionWithPost struct {
	Section models.Section
	Post    *models.Post
}

// ListDocumentSectionsWithPosts returns a manuscript's document-type
// sections in storyboard order, each left-joined with its linked post.
// This is the compile-time source when a manuscript is given.
func (s *SectionStore) ListDocumentSectionsWithPosts(manuscriptID uuid.UUID) ([]SectionWithPost, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.manuscript_id, s.parent_id, s.post_id, s.title, s.content,
		       s.synopsis, s.type, s.sort_order, s.word_count, s.target_word_count,
		       s.include_in_compile, s.notes, s.status, s.label, s.keywords,
		       s.custom_icon, s.date_of_event, s.metadata, s.corkboard_position,
		       s.created_at, s.updated_at,
		       p.id, p.title, p.content, p.excerpt, p.date_of_event,
		       p.year_of_event, p.slug, p.status, p.created_at, p.updated_at
		FROM sections s
		LEFT JOIN posts p ON p.id = s.post_id
		WHERE s.manuscript_id = $1 AND s.type = 'document'
		ORDER BY s.sort_order ASC
	`, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("list compile sections: %w", err)
	}
	defer rows.Close()

	var items []SectionWithPost
	for rows.Next() {
		var item SectionWithPost
		sec := &item.Section

		// Post columns come back null for unlinked sections.
		var (
			postID                 *uuid.UUID
			postTitle, postContent *string
			postExcerpt, postDate  *string
			postYear               *int
			postSlug, postStatus   *string
			postCreated, postUpdated *sql.NullTime
		)

		if err := rows.Scan(
			&sec.ID, &sec.ManuscriptID, &sec.ParentID, &sec.PostID, &sec.Title,
			&sec.Content, &sec.Synopsis, &sec.Type, &sec.SortOrder, &sec.WordCount,
			&sec.TargetWordCount, &sec.IncludeInCompile, &sec.Notes, &sec.Status,
			&sec.Label, &sec.Keywords, &sec.CustomIcon, &sec.DateOfEvent,
			&sec.Metadata, &sec.CorkboardPosition, &sec.CreatedAt, &sec.UpdatedAt,
			&postID, &postTitle, &postContent, &postExcerpt, &postDate,
			&postYear, &postSlug, &postStatus, &postCreated, &postUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan compile section: %w", err)
		}

		if postID != nil {
			post := &models.Post{
				ID:          *postID,
				Title:       *postTitle,
				Content:     *postContent,
				Excerpt:     *postExcerpt,
				DateOfEvent: *postDate,
				YearOfEvent: *postYear,
				Slug:        *postSlug,
				Status:      models.PostStatus(*postStatus),
			}
			if postCreated != nil && postCreated.Valid {
				post.CreatedAt = postCreated.Time
			}
			if postUpdated != nil && postUpdated.Valid {
				post.UpdatedAt = postUpdated.Time
			}
			item.Post = post
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
