package database

import (
	"database/sql"
	"fmt"
	"strings"
)

var _ LogRepository = (*logRepository)(nil)

type logRepository struct {
	db *DB
}

func NewLogRepository(db *DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) CreateLog(question, answer, markdownContent string) (int64, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO learning_logs (question, answer, markdown_content)
		VALUES (?, ?, ?)
		RETURNING id
	`, question, answer, markdownContent).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create learning log: %w", err)
	}

	return id, nil
}

func (r *logRepository) GetLog(id int64) (*LearningLog, error) {
	var log LearningLog
	err := r.db.QueryRow(`
		SELECT id, question, answer, markdown_content, is_bookmarked, view_count, created_at, updated_at
		FROM learning_logs
		WHERE id = ?
	`, id).Scan(
		&log.ID, &log.Question, &log.Answer, &log.MarkdownContent,
		&log.IsBookmarked, &log.ViewCount, &log.CreatedAt, &log.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning log: %w", err)
	}

	if err := r.loadTags(&log); err != nil {
		return nil, err
	}
	if err := r.loadReferences(&log); err != nil {
		return nil, err
	}

	return &log, nil
}

// List returns one page of learning logs plus a has-next flag. Tags are
// loaded for every returned log; references are only loaded on GetLog.
func (r *logRepository) List(opts ListOptions) ([]LearningLog, bool, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = 12
	}

	var (
		selectClause = "SELECT l.id, l.question, l.answer, l.markdown_content, l.is_bookmarked, l.view_count, l.created_at, l.updated_at"
		fromClause   = "FROM learning_logs l"
		conditions   []string
		args         []interface{}
	)

	if opts.Query != "" {
		selectClause += ", bm25(learning_logs_fts, 1.0, 0.4) AS rank"
		fromClause = "FROM learning_logs_fts JOIN learning_logs l ON l.id = learning_logs_fts.rowid"
		conditions = append(conditions, "learning_logs_fts MATCH ?")
		args = append(args, ftsMatchExpr(opts.Query))
	}

	if opts.Tag != "" {
		conditions = append(conditions, `l.id IN (
			SELECT lt.log_id FROM learning_log_tags lt
			JOIN tags t ON t.id = lt.tag_id
			WHERE t.slug = ?)`)
		args = append(args, opts.Tag)
	}

	if opts.Bookmarked {
		conditions = append(conditions, "l.is_bookmarked = 1")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var orderClause string
	switch {
	case opts.Sort == SortRelevance && opts.Query != "":
		// bm25 scores are negative log-probabilities: smaller is better
		orderClause = "ORDER BY rank ASC"
	case opts.Sort == SortViews:
		orderClause = "ORDER BY l.view_count DESC, l.created_at DESC"
	case opts.Sort == SortOldest:
		orderClause = "ORDER BY l.created_at ASC, l.id ASC"
	default:
		orderClause = "ORDER BY l.created_at DESC, l.id DESC"
	}

	// Fetch one extra row to detect whether a next page exists
	args = append(args, opts.PerPage+1, (opts.Page-1)*opts.PerPage)

	query := fmt.Sprintf("%s %s %s %s LIMIT ? OFFSET ?", selectClause, fromClause, whereClause, orderClause)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list learning logs: %w", err)
	}
	defer rows.Close()

	var logs []LearningLog
	for rows.Next() {
		var log LearningLog
		dest := []interface{}{
			&log.ID, &log.Question, &log.Answer, &log.MarkdownContent,
			&log.IsBookmarked, &log.ViewCount, &log.CreatedAt, &log.UpdatedAt,
		}
		if opts.Query != "" {
			var rank float64
			dest = append(dest, &rank)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, false, fmt.Errorf("failed to scan learning log row: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating learning log rows: %w", err)
	}

	hasNext := false
	if len(logs) > opts.PerPage {
		hasNext = true
		logs = logs[:opts.PerPage]
	}

	for i := range logs {
		if err := r.loadTags(&logs[i]); err != nil {
			return nil, false, err
		}
	}

	return logs, hasNext, nil
}

func (r *logRepository) AttachTag(logID, tagID int64) error {
	_, err := r.db.Exec(`
		INSERT INTO learning_log_tags (log_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, logID, tagID)

	if err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}

	return nil
}

func (r *logRepository) AttachReference(logID, referenceID int64) error {
	_, err := r.db.Exec(`
		INSERT INTO learning_log_references (log_id, reference_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, logID, referenceID)

	if err != nil {
		return fmt.Errorf("failed to attach reference: %w", err)
	}

	return nil
}

func (r *logRepository) IncrementViewCount(id int64) error {
	_, err := r.db.Exec(`
		UPDATE learning_logs
		SET view_count = view_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)

	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func (r *logRepository) SetBookmarked(id int64, bookmarked bool) error {
	_, err := r.db.Exec(`
		UPDATE learning_logs
		SET is_bookmarked = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, bookmarked, id)

	if err != nil {
		return fmt.Errorf("failed to set bookmark: %w", err)
	}

	return nil
}

func (r *logRepository) GetLogCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM learning_logs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get log count: %w", err)
	}
	return count, nil
}

func (r *logRepository) loadTags(log *LearningLog) error {
	rows, err := r.db.Query(`
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN learning_log_tags lt ON lt.tag_id = t.id
		WHERE lt.log_id = ?
		ORDER BY t.name
	`, log.ID)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan tag row: %w", err)
		}
		log.Tags = append(log.Tags, tag)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating tag rows: %w", err)
	}

	return nil
}

func (r *logRepository) loadReferences(log *LearningLog) error {
	rows, err := r.db.Query(`
		SELECT d.id, d.url, d.title, d.excerpt, d.source_type,
		       d.extraction_status, d.extraction_attempts, d.extracted_at,
		       d.extraction_error, d.fetched_at
		FROM doc_references d
		JOIN learning_log_references lr ON lr.reference_id = d.id
		WHERE lr.log_id = ?
		ORDER BY d.fetched_at DESC, d.id DESC
	`, log.ID)
	if err != nil {
		return fmt.Errorf("failed to load references: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref Reference
		if err := rows.Scan(
			&ref.ID, &ref.URL, &ref.Title, &ref.Excerpt, &ref.SourceType,
			&ref.ExtractionStatus, &ref.ExtractionAttempts, &ref.ExtractedAt,
			&ref.ExtractionError, &ref.FetchedAt,
		); err != nil {
			return fmt.Errorf("failed to scan reference row: %w", err)
		}
		log.References = append(log.References, ref)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating reference rows: %w", err)
	}

	return nil
}

// ftsMatchExpr turns free-form user input into a safe FTS5 expression:
// each whitespace-separated term becomes a quoted string, terms are ANDed.
func ftsMatchExpr(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
