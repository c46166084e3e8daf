package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/user/learnlog/app/database"
)

const (
	extractionBatchSize = 10
	fetchTimeout        = 15 * time.Second
)

type ExtractExcerptsTask struct {
	Task
	httpClient *http.Client
	extractor  *ExcerptExtractor
	refRepo    database.ReferenceRepository
	userAgent  string
}

func NewExtractExcerptsTask(httpClient *http.Client, extractor *ExcerptExtractor,
	refRepo database.ReferenceRepository, userAgent string) *ExtractExcerptsTask {
	return &ExtractExcerptsTask{
		Task:       NewTask(TaskTypeExtractExcerpts),
		httpClient: httpClient,
		extractor:  extractor,
		refRepo:    refRepo,
		userAgent:  userAgent,
	}
}

func (t *ExtractExcerptsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	refs, err := t.refRepo.GetReferencesForExtraction(extractionBatchSize)
	if err != nil {
		return fmt.Errorf("failed to get references for extraction: %w", err)
	}

	if len(refs) == 0 {
		slog.Debug("No references need excerpt extraction")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, ref := range refs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := t.extractExcerptForReference(ctx, ref)
		if err != nil {
			slog.Error("Failed to extract excerpt for reference", "reference_id", ref.ID, "url", ref.URL, "error", err)
			errorCount++

			now := time.Now().UTC()
			err = t.refRepo.UpdateExtractionStatus(ref.ID, database.ExtractionFailed, &now, err.Error())
			if err != nil {
				slog.Error("Failed to update extraction status", "reference_id", ref.ID, "error", err)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractExcerptsTask) extractExcerptForReference(ctx context.Context, ref database.ReferenceForExtraction) error {
	if ref.URL == "" {
		return fmt.Errorf("reference has no URL")
	}

	data, err := t.fetchPage(ctx, ref.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}

	excerpt, err := t.extractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract excerpt: %w", err)
	}

	now := time.Now().UTC()
	err = t.refRepo.UpdateExtractedExcerpt(ref.ID, excerpt, now)
	if err != nil {
		return fmt.Errorf("failed to update extracted excerpt: %w", err)
	}

	slog.Debug("Excerpt extracted successfully", "reference_id", ref.ID, "url", ref.URL, "excerpt_length", len(excerpt))
	return nil
}

func (t *ExtractExcerptsTask) fetchPage(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
