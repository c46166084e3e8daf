package database

import (
	"time"
)

// Reference source types, mirrored by the CHECK constraint in the schema.
const (
	SourceOfficial      = "official"
	SourceBlog          = "blog"
	SourceStackOverflow = "stackoverflow"
	SourceGitHub        = "github"
	SourceOther         = "other"
)

// Reference extraction states.
const (
	ExtractionPending = "pending"
	ExtractionSuccess = "success"
	ExtractionFailed  = "failed"
	ExtractionSkipped = "skipped"
)

type Tag struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

type Reference struct {
	ID                 int64
	URL                string
	Title              string
	Excerpt            string
	SourceType         string
	ExtractionStatus   string
	ExtractionAttempts int
	ExtractedAt        *time.Time
	ExtractionError    string
	FetchedAt          time.Time
}

type LearningLog struct {
	ID              int64
	Question        string
	Answer          string
	MarkdownContent string
	IsBookmarked    bool
	ViewCount       int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Tags       []Tag
	References []Reference
}

// ReferenceForExtraction is the slim projection the extraction task works on.
type ReferenceForExtraction struct {
	ID  int64
	URL string
}

// Sort orders accepted by ListOptions.
const (
	SortLatest    = "latest"
	SortOldest    = "oldest"
	SortViews     = "views"
	SortRelevance = "relevance"
)

// ListOptions describes a learning log listing query. Query triggers a
// full-text match over question and answer. Page is 1-based.
type ListOptions struct {
	Query      string
	Sort       string
	Tag        string
	Bookmarked bool
	Page       int
	PerPage    int
}
