package api

import (
	"context"
	"time"

	"github.com/user/learnlog/app/database"
	"github.com/user/learnlog/app/pipeline"
)

// QueryProcessorInterface is the pipeline surface the handlers depend on.
type QueryProcessorInterface interface {
	Process(ctx context.Context, question string) (*pipeline.Result, error)
	Run(ctx context.Context, question string, onProgress func(pipeline.Progress)) (*pipeline.Result, error)
}

var _ QueryProcessorInterface = (*pipeline.Pipeline)(nil)

type Handler struct {
	processor QueryProcessorInterface
	logRepo   database.LogRepository
	tagRepo   database.TagRepository
	refRepo   database.ReferenceRepository
}

type TagDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type ReferenceDTO struct {
	ID                int64     `json:"id"`
	URL               string    `json:"url"`
	Title             string    `json:"title"`
	Excerpt           string    `json:"excerpt"`
	SourceType        string    `json:"source_type"`
	SourceTypeDisplay string    `json:"source_type_display"`
	CreatedAt         time.Time `json:"created_at"`
}

type LearningLogDTO struct {
	ID              int64          `json:"id"`
	Query           string         `json:"query"`
	AIResponse      string         `json:"ai_response"`
	MarkdownContent string         `json:"markdown_content"`
	Tags            []TagDTO       `json:"tags"`
	References      []ReferenceDTO `json:"references"`
	IsBookmarked    bool           `json:"is_bookmarked"`
	ViewCount       int            `json:"view_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Korean labels match the source type values stored in the database.
var sourceTypeLabels = map[string]string{
	database.SourceOfficial:      "공식 문서",
	database.SourceBlog:          "기술 블로그",
	database.SourceStackOverflow: "Stack Overflow",
	database.SourceGitHub:        "GitHub",
	database.SourceOther:         "기타",
}

func sourceTypeLabel(sourceType string) string {
	if label, ok := sourceTypeLabels[sourceType]; ok {
		return label
	}
	return sourceTypeLabels[database.SourceOther]
}

func toLogDTO(log *database.LearningLog) LearningLogDTO {
	tags := make([]TagDTO, 0, len(log.Tags))
	for _, t := range log.Tags {
		tags = append(tags, TagDTO{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			CreatedAt: t.CreatedAt,
		})
	}

	refs := make([]ReferenceDTO, 0, len(log.References))
	for _, r := range log.References {
		refs = append(refs, ReferenceDTO{
			ID:                r.ID,
			URL:               r.URL,
			Title:             r.Title,
			Excerpt:           r.Excerpt,
			SourceType:        r.SourceType,
			SourceTypeDisplay: sourceTypeLabel(r.SourceType),
			CreatedAt:         r.FetchedAt,
		})
	}

	return LearningLogDTO{
		ID:              log.ID,
		Query:           log.Question,
		AIResponse:      log.Answer,
		MarkdownContent: log.MarkdownContent,
		Tags:            tags,
		References:      refs,
		IsBookmarked:    log.IsBookmarked,
		ViewCount:       log.ViewCount,
		CreatedAt:       log.CreatedAt,
		UpdatedAt:       log.UpdatedAt,
	}
}
