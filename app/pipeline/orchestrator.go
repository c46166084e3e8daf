package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/user/learnlog/app/database"
	"github.com/user/learnlog/app/domains"
	"github.com/user/learnlog/app/search"
)

// TotalSteps is the number of progress-reporting stages:
// received, searched, answered, tagged, formatted.
const TotalSteps = 5

const minQuestionRunes = 5

// MinLengthMessage is the user-facing validation message.
const MinLengthMessage = "질문은 최소 5자 이상이어야 합니다."

// ValidationError rejects a question before any collaborator is called.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Progress is one abstract step notification, free of any transport
// framing; each delivery surface encodes it for its own wire format.
type Progress struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// Result carries the persisted log together with which adapters fell
// back to their safe defaults during the run.
type Result struct {
	Log *database.LearningLog

	SearchFellBack   bool
	AnswerFellBack   bool
	TagsFellBack     bool
	MarkdownFellBack bool
}

// Pipeline sequences search, answer generation, tag extraction,
// markdown formatting, and persistence for one question. It holds no
// per-run state; invocations are independent.
type Pipeline struct {
	searcher  Searcher
	answerer  Answerer
	tagger    Tagger
	formatter Formatter
	matcher   *domains.Matcher

	logRepo database.LogRepository
	tagRepo database.TagRepository
	refRepo database.ReferenceRepository
}

func New(searcher Searcher, answerer Answerer, tagger Tagger, formatter Formatter,
	matcher *domains.Matcher, logRepo database.LogRepository,
	tagRepo database.TagRepository, refRepo database.ReferenceRepository) *Pipeline {
	return &Pipeline{
		searcher:  searcher,
		answerer:  answerer,
		tagger:    tagger,
		formatter: formatter,
		matcher:   matcher,
		logRepo:   logRepo,
		tagRepo:   tagRepo,
		refRepo:   refRepo,
	}
}

// Process runs the pipeline without progress reporting.
func (p *Pipeline) Process(ctx context.Context, question string) (*Result, error) {
	return p.Run(ctx, question, nil)
}

// Run validates the question, walks the five stages in order, persists
// the outcome, and returns the fully loaded log. onProgress (optional)
// receives one notification per stage.
func (p *Pipeline) Run(ctx context.Context, question string, onProgress func(Progress)) (*Result, error) {
	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) < minQuestionRunes {
		return nil, &ValidationError{Message: MinLengthMessage}
	}

	emit := func(step int, message string) {
		if onProgress != nil {
			onProgress(Progress{Step: step, Total: TotalSteps, Message: message})
		}
	}

	result := &Result{}

	emit(1, fmt.Sprintf("질문 받음: %s", question))

	searchResults, searchFB := p.searcher.Run(ctx, question)
	result.SearchFellBack = searchFB != nil
	emit(2, fmt.Sprintf("검색 완료: %d개 결과", len(searchResults)))

	answer, answerFB := p.answerer.Run(ctx, question, searchResults)
	result.AnswerFellBack = answerFB != nil
	emit(3, fmt.Sprintf("AI 답변 생성 완료 (%d자)", utf8.RuneCountInString(answer)))

	tags, tagFB := p.tagger.Run(ctx, question, answer)
	result.TagsFellBack = tagFB != nil
	emit(4, fmt.Sprintf("태그 추출 완료: %s", strings.Join(tags, ", ")))

	markdown, markdownFB := p.formatter.Run(ctx, question, answer, searchResults)
	result.MarkdownFellBack = markdownFB != nil
	emit(5, "마크다운 변환 완료")

	log, err := p.persist(question, answer, markdown, searchResults, tags)
	if err != nil {
		return nil, err
	}
	result.Log = log

	slog.Info("Query processed",
		"log_id", log.ID,
		"results", len(searchResults),
		"tags", len(tags),
		"search_fallback", result.SearchFellBack,
		"answer_fallback", result.AnswerFellBack,
		"tags_fallback", result.TagsFellBack,
		"markdown_fallback", result.MarkdownFellBack)

	return result, nil
}

func (p *Pipeline) persist(question, answer, markdown string, results []search.Result, tags []string) (*database.LearningLog, error) {
	logID, err := p.logRepo.CreateLog(question, answer, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to create learning log: %w", err)
	}

	for _, r := range results {
		if r.URL == "" {
			slog.Debug("Skipping search result without URL", "title", r.Title)
			continue
		}

		title := r.Title
		if title == "" {
			title = "Untitled"
		}

		refID, created, err := p.refRepo.GetOrCreateReference(
			r.URL, title, truncateRunes(r.Content, 500), p.matcher.ClassifySource(r.URL))
		if err != nil {
			return nil, fmt.Errorf("failed to upsert reference: %w", err)
		}
		if created {
			slog.Debug("Reference created", "url", r.URL)
		}

		if err := p.logRepo.AttachReference(logID, refID); err != nil {
			return nil, fmt.Errorf("failed to attach reference: %w", err)
		}
	}

	for _, name := range tags {
		tagID, created, err := p.tagRepo.GetOrCreateTag(name)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag: %w", err)
		}
		if created {
			slog.Debug("Tag created", "name", name)
		}

		if err := p.logRepo.AttachTag(logID, tagID); err != nil {
			return nil, fmt.Errorf("failed to attach tag: %w", err)
		}
	}

	log, err := p.logRepo.GetLog(logID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload learning log: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("learning log %d disappeared after creation", logID)
	}

	return log, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
