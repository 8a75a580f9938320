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

// PostStore handles all post-related database operations, including the
// category/tag join tables.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, excerpt, date_of_event, year_of_event,
       slug, status, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.DateOfEvent,
		&p.YearOfEvent, &p.Slug, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns posts matching an optional title search and status filter,
// ordered by last update descending. Limit and offset page the result.
func (s *PostStore) List(search string, status models.PostStatus, limit, offset int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	var args []any
	where := ""

	if search != "" {
		args = append(args, "%"+search+"%")
		where = fmt.Sprintf(" WHERE title ILIKE $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		if where == "" {
			where = fmt.Sprintf(" WHERE status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND status = $%d", len(args))
		}
	}

	args = append(args, limit, offset)
	query += where + fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ListPublished returns all published posts ordered by creation time
// descending. This is the compile-time source when no manuscript is given.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = 'published'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID.
// YearOfEvent must already be derived by the caller.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	created, err := scanPost(s.db.QueryRow(`
		INSERT INTO posts (title, content, excerpt, date_of_event, year_of_event, slug, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns,
		p.Title, p.Content, p.Excerpt, p.DateOfEvent, p.YearOfEvent, p.Slug, p.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// Update modifies an existing post. YearOfEvent is written as-is — it is
// derived once at creation and not recomputed on date edits.
func (s *PostStore) Update(p *models.Post) error {
	res, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, content = $2, excerpt = $3, date_of_event = $4,
			year_of_event = $5, slug = $6, status = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Title, p.Content, p.Excerpt, p.DateOfEvent, p.YearOfEvent, p.Slug, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a post. Join rows cascade; sections referencing the post
// keep their copied content with post_id set to null.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// SetCategories replaces the post's category links with the given set.
// Each link is written independently; a failure partway leaves earlier
// links in place.
func (s *PostStore) SetCategories(postID uuid.UUID, categoryIDs []uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post categories: %w", err)
	}
	for _, catID := range categoryIDs {
		if _, err := s.db.Exec(
			`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
			postID, catID,
		); err != nil {
			return fmt.Errorf("attach category %s: %w", catID, err)
		}
	}
	return nil
}

// SetTags replaces the post's tag links with the given set.
func (s *PostStore) SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := s.db.Exec(
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
			postID, tagID,
		); err != nil {
			return fmt.Errorf("attach tag %s: %w", tagID, err)
		}
	}
	return nil
}

// CategoriesFor returns the categories linked to a post.
func (s *PostStore) CategoriesFor(postID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.description, c.type, c.color
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY c.type, c.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Type, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// TagsFor returns the tags linked to a post.
func (s *PostStore) TagsFor(postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.description, t.color
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
