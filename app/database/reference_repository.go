package database

import (
	"fmt"
	"time"
)

var _ ReferenceRepository = (*referenceRepository)(nil)

type referenceRepository struct {
	db *DB
}

func NewReferenceRepository(db *DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// GetOrCreateReference inserts a reference keyed by URL, reusing the
// existing row on conflict without overwriting its fields. The returned
// bool reports whether a new row was created.
func (r *referenceRepository) GetOrCreateReference(url, title, excerpt, sourceType string) (int64, bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO doc_references (url, title, excerpt, source_type)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`, url, title, excerpt, sourceType)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert reference: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read insert result: %w", err)
	}

	var id int64
	err = r.db.QueryRow(`SELECT id FROM doc_references WHERE url = ?`, url).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get reference %q: %w", url, err)
	}

	return id, inserted > 0, nil
}

func (r *referenceRepository) GetReferenceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM doc_references").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get reference count: %w", err)
	}
	return count, nil
}

func (r *referenceRepository) GetReferencesForExtraction(limit int) ([]ReferenceForExtraction, error) {
	rows, err := r.db.Query(`
		SELECT id, url
		FROM doc_references
		WHERE extraction_status = 'pending'
		ORDER BY fetched_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get references for extraction: %w", err)
	}
	defer rows.Close()

	var refs []ReferenceForExtraction
	for rows.Next() {
		var ref ReferenceForExtraction
		if err := rows.Scan(&ref.ID, &ref.URL); err != nil {
			return nil, fmt.Errorf("failed to scan reference row: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reference rows: %w", err)
	}

	return refs, nil
}

func (r *referenceRepository) UpdateExtractedExcerpt(id int64, excerpt string, extractedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE doc_references
		SET excerpt = ?, extraction_status = 'success',
		    extraction_attempts = extraction_attempts + 1,
		    extracted_at = ?, extraction_error = ''
		WHERE id = ?
	`, excerpt, extractedAt, id)

	if err != nil {
		return fmt.Errorf("failed to update extracted excerpt: %w", err)
	}

	return nil
}

func (r *referenceRepository) UpdateExtractionStatus(id int64, status string, extractedAt *time.Time, extractionError string) error {
	_, err := r.db.Exec(`
		UPDATE doc_references
		SET extraction_status = ?,
		    extraction_attempts = extraction_attempts + 1,
		    extracted_at = ?, extraction_error = ?
		WHERE id = ?
	`, status, extractedAt, extractionError, id)

	if err != nil {
		return fmt.Errorf("failed to update extraction status: %w", err)
	}

	return nil
}
