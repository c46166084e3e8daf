package database

import (
	"fmt"
)

var _ TagRepository = (*tagRepository)(nil)

type tagRepository struct {
	db *DB
}

func NewTagRepository(db *DB) TagRepository {
	return &tagRepository{db: db}
}

// GetOrCreateTag inserts a tag by name, reusing an existing row on
// conflict. The returned bool reports whether a new row was created.
// Insert-then-select keeps the operation race-safe: a concurrent insert
// wins the conflict and the follow-up select observes its row.
func (r *tagRepository) GetOrCreateTag(name string) (int64, bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO tags (name, slug)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, name, Slugify(name))
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert tag: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read insert result: %w", err)
	}

	var id int64
	err = r.db.QueryRow(`SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get tag %q: %w", name, err)
	}

	return id, inserted > 0, nil
}

func (r *tagRepository) GetTags() ([]Tag, error) {
	rows, err := r.db.Query(`
		SELECT id, name, slug, created_at
		FROM tags
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return tags, nil
}
