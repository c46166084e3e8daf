package database

import (
	"time"
)

type LogRepository interface {
	CreateLog(question, answer, markdownContent string) (int64, error)
	GetLog(id int64) (*LearningLog, error)
	List(opts ListOptions) ([]LearningLog, bool, error)
	AttachTag(logID, tagID int64) error
	AttachReference(logID, referenceID int64) error
	IncrementViewCount(id int64) error
	SetBookmarked(id int64, bookmarked bool) error
	GetLogCount() (int, error)
}

type TagRepository interface {
	GetOrCreateTag(name string) (int64, bool, error)
	GetTags() ([]Tag, error)
}

type ReferenceRepository interface {
	GetOrCreateReference(url, title, excerpt, sourceType string) (int64, bool, error)
	GetReferenceCount() (int, error)

	GetReferencesForExtraction(limit int) ([]ReferenceForExtraction, error)
	UpdateExtractedExcerpt(id int64, excerpt string, extractedAt time.Time) error
	UpdateExtractionStatus(id int64, status string, extractedAt *time.Time, extractionError string) error
}
