package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a starter set
// of categories and tags, two published posts, and a manuscript with the
// posts storyboarded as sections. It is a no-op if any posts exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var categoryID string
	err = tx.QueryRow(`
		INSERT INTO categories (name, slug, description, type, color)
		VALUES ('Political', 'political', 'Treaties, elections, and statecraft', 'event_type', '#2563eb')
		RETURNING id
	`).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO categories (name, slug, type, color) VALUES
		('Interwar Period', 'interwar-period', 'era', '#7c3aed'),
		('Europe', 'europe', 'region', '#059669')
	`); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	var tagID string
	err = tx.QueryRow(`
		INSERT INTO tags (name, slug, color)
		VALUES ('diplomacy', 'diplomacy', '#d97706')
		RETURNING id
	`).Scan(&tagID)
	if err != nil {
		return fmt.Errorf("seed tag: %w", err)
	}

	var postID string
	err = tx.QueryRow(`
		INSERT INTO posts (title, content, excerpt, date_of_event, year_of_event, slug, status)
		VALUES (
			'The Treaty of Versailles',
			'The treaty was signed in the Hall of Mirrors, five years to the day after the assassination in Sarajevo.' || E'\n\n' ||
			'Its terms would shape European politics for the next two decades.',
			'The peace treaty that formally ended the First World War.',
			'1919-06-28', 1919, 'the-treaty-of-versailles', 'published'
		)
		RETURNING id
	`).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed post: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
		postID, categoryID,
	); err != nil {
		return fmt.Errorf("seed post category: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
		postID, tagID,
	); err != nil {
		return fmt.Errorf("seed post tag: %w", err)
	}

	var secondPostID string
	err = tx.QueryRow(`
		INSERT INTO posts (title, content, excerpt, date_of_event, year_of_event, slug, status)
		VALUES (
			'The League Convenes',
			'The first council meeting of the League of Nations was held in Paris in January 1920.',
			'The first meeting of the League of Nations.',
			'1920-01-16', 1920, 'the-league-convenes', 'published'
		)
		RETURNING id
	`).Scan(&secondPostID)
	if err != nil {
		return fmt.Errorf("seed second post: %w", err)
	}

	var manuscriptID string
	err = tx.QueryRow(`
		INSERT INTO manuscripts (title, description, status)
		VALUES ('Aftermath: Europe 1919-1939', 'A short history of the interwar years', 'in_progress')
		RETURNING id
	`).Scan(&manuscriptID)
	if err != nil {
		return fmt.Errorf("seed manuscript: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO sections (manuscript_id, post_id, title, type, sort_order)
		VALUES ($1, $2, 'The Treaty of Versailles', 'document', 10),
		       ($1, $3, 'The League Convenes', 'document', 20)
	`, manuscriptID, postID, secondPostID); err != nil {
		return fmt.Errorf("seed sections: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample content",
		"posts", 2,
		"manuscript", "Aftermath: Europe 1919-1939",
	)

	return nil
}
