package database

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestRunMigrations(t *testing.T) {
	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	if version == 0 {
		t.Errorf("Expected non-zero migration version")
	}
	if dirty {
		t.Errorf("Expected clean migration state")
	}

	// Running again is a no-op
	if _, _, err := RunMigrations(db); err != nil {
		t.Errorf("Expected re-run to succeed, got: %v", err)
	}
}

func TestGetOrCreateTag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)

	id1, created, err := repo.GetOrCreateTag("docker")
	if err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	if !created {
		t.Errorf("Expected created=true on first call")
	}

	id2, created, err := repo.GetOrCreateTag("docker")
	if err != nil {
		t.Fatalf("Failed to get tag: %v", err)
	}
	if created {
		t.Errorf("Expected created=false on second call")
	}
	if id1 != id2 {
		t.Errorf("Expected same id for same name, got %d and %d", id1, id2)
	}

	tags, err := repo.GetTags()
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("Expected one tag, got %d", len(tags))
	}
	if tags[0].Slug != "docker" {
		t.Errorf("Expected slug 'docker', got %q", tags[0].Slug)
	}
}

func TestGetOrCreateReference(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReferenceRepository(db)

	url := "https://docs.docker.com/network/"

	id1, created, err := repo.GetOrCreateReference(url, "Networking", "Docker networking overview", SourceOfficial)
	if err != nil {
		t.Fatalf("Failed to create reference: %v", err)
	}
	if !created {
		t.Errorf("Expected created=true on first call")
	}

	// A second search hit for the same URL must not create a duplicate
	// or overwrite the stored fields
	id2, created, err := repo.GetOrCreateReference(url, "Other Title", "other excerpt", SourceBlog)
	if err != nil {
		t.Fatalf("Failed on duplicate url: %v", err)
	}
	if created {
		t.Errorf("Expected created=false for duplicate url")
	}
	if id1 != id2 {
		t.Errorf("Expected same id for same url, got %d and %d", id1, id2)
	}

	count, err := repo.GetReferenceCount()
	if err != nil {
		t.Fatalf("Failed to count references: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected one reference, got %d", count)
	}
}

func TestCreateAndGetLog(t *testing.T) {
	db := setupTestDB(t)
	logRepo := NewLogRepository(db)
	tagRepo := NewTagRepository(db)
	refRepo := NewReferenceRepository(db)

	logID, err := logRepo.CreateLog("docker와 kubernetes의 차이는?", "도커는 런타임입니다.", "## 정리")
	if err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}

	tagID, _, err := tagRepo.GetOrCreateTag("docker")
	if err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	if err := logRepo.AttachTag(logID, tagID); err != nil {
		t.Fatalf("Failed to attach tag: %v", err)
	}

	refID, _, err := refRepo.GetOrCreateReference("https://docs.docker.com/", "Docker Docs", "excerpt", SourceOfficial)
	if err != nil {
		t.Fatalf("Failed to create reference: %v", err)
	}
	if err := logRepo.AttachReference(logID, refID); err != nil {
		t.Fatalf("Failed to attach reference: %v", err)
	}

	log, err := logRepo.GetLog(logID)
	if err != nil {
		t.Fatalf("Failed to get log: %v", err)
	}
	if log == nil {
		t.Fatal("Expected log, got nil")
	}

	if log.Question != "docker와 kubernetes의 차이는?" {
		t.Errorf("Unexpected question: %q", log.Question)
	}
	if log.ViewCount != 0 {
		t.Errorf("Expected initial view count 0, got %d", log.ViewCount)
	}
	if len(log.Tags) != 1 || log.Tags[0].Name != "docker" {
		t.Errorf("Expected docker tag loaded, got %v", log.Tags)
	}
	if len(log.References) != 1 || log.References[0].URL != "https://docs.docker.com/" {
		t.Errorf("Expected reference loaded, got %v", log.References)
	}
	if log.References[0].ExtractionStatus != ExtractionPending {
		t.Errorf("Expected pending extraction status, got %q", log.References[0].ExtractionStatus)
	}
}

func TestGetLog_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	log, err := repo.GetLog(999)
	if err != nil {
		t.Fatalf("Expected no error for missing log, got: %v", err)
	}
	if log != nil {
		t.Errorf("Expected nil for missing log, got %v", log)
	}
}

func TestAttachTag_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	logRepo := NewLogRepository(db)
	tagRepo := NewTagRepository(db)

	logID, _ := logRepo.CreateLog("question about docker", "answer", "md")
	tagID, _, _ := tagRepo.GetOrCreateTag("docker")

	if err := logRepo.AttachTag(logID, tagID); err != nil {
		t.Fatalf("Failed to attach tag: %v", err)
	}
	if err := logRepo.AttachTag(logID, tagID); err != nil {
		t.Errorf("Expected duplicate attach to be a no-op, got: %v", err)
	}

	log, _ := logRepo.GetLog(logID)
	if len(log.Tags) != 1 {
		t.Errorf("Expected one tag after duplicate attach, got %d", len(log.Tags))
	}
}

func TestIncrementViewCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	logID, _ := repo.CreateLog("question about docker", "answer", "md")

	if err := repo.IncrementViewCount(logID); err != nil {
		t.Fatalf("Failed to increment: %v", err)
	}
	if err := repo.IncrementViewCount(logID); err != nil {
		t.Fatalf("Failed to increment: %v", err)
	}

	log, _ := repo.GetLog(logID)
	if log.ViewCount != 2 {
		t.Errorf("Expected view count 2, got %d", log.ViewCount)
	}
}

func TestSetBookmarked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	logID, _ := repo.CreateLog("question about docker", "answer", "md")

	if err := repo.SetBookmarked(logID, true); err != nil {
		t.Fatalf("Failed to bookmark: %v", err)
	}

	log, _ := repo.GetLog(logID)
	if !log.IsBookmarked {
		t.Errorf("Expected bookmark persisted")
	}

	if err := repo.SetBookmarked(logID, false); err != nil {
		t.Fatalf("Failed to clear bookmark: %v", err)
	}

	log, _ = repo.GetLog(logID)
	if log.IsBookmarked {
		t.Errorf("Expected bookmark cleared")
	}
}

func TestList_FullTextSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	repo.CreateLog("docker 네트워크 설정 방법", "브리지 네트워크를 사용합니다.", "md")
	repo.CreateLog("python 가상환경 만들기", "venv 모듈을 사용하고 docker 이미지로도 가능합니다.", "md")
	repo.CreateLog("git rebase 사용법", "rebase는 커밋을 재배열합니다.", "md")

	logs, _, err := repo.List(ListOptions{Query: "docker", Sort: SortRelevance, Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("Expected two matches, got %d", len(logs))
	}

	// The question column carries more weight than the answer column
	if logs[0].Question != "docker 네트워크 설정 방법" {
		t.Errorf("Expected question match ranked first, got %q", logs[0].Question)
	}
}

func TestList_SearchNoMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	repo.CreateLog("docker 네트워크 설정 방법", "답변", "md")

	logs, hasNext, err := repo.List(ListOptions{Query: "kubernetes", Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(logs) != 0 || hasNext {
		t.Errorf("Expected no matches, got %d", len(logs))
	}
}

func TestList_SearchQuoting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	repo.CreateLog("docker-compose 사용법", "답변", "md")

	// Hyphens and quotes are FTS5 syntax; user input must not break the query
	if _, _, err := repo.List(ListOptions{Query: `docker-compose "quoted"`, Page: 1, PerPage: 12}); err != nil {
		t.Errorf("Expected special characters to be escaped, got: %v", err)
	}
}

func TestList_Sorts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	first, _ := repo.CreateLog("first question", "answer", "md")
	second, _ := repo.CreateLog("second question", "answer", "md")
	third, _ := repo.CreateLog("third question", "answer", "md")

	repo.IncrementViewCount(second)
	repo.IncrementViewCount(second)
	repo.IncrementViewCount(first)

	logs, _, err := repo.List(ListOptions{Sort: SortLatest, Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if logs[0].ID != third {
		t.Errorf("Expected newest first, got id %d", logs[0].ID)
	}

	logs, _, _ = repo.List(ListOptions{Sort: SortOldest, Page: 1, PerPage: 12})
	if logs[0].ID != first {
		t.Errorf("Expected oldest first, got id %d", logs[0].ID)
	}

	logs, _, _ = repo.List(ListOptions{Sort: SortViews, Page: 1, PerPage: 12})
	if logs[0].ID != second {
		t.Errorf("Expected most viewed first, got id %d", logs[0].ID)
	}
}

func TestList_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	for i := 0; i < 13; i++ {
		repo.CreateLog("question about pagination", "answer", "md")
	}

	logs, hasNext, err := repo.List(ListOptions{Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(logs) != 12 {
		t.Errorf("Expected 12 logs on page 1, got %d", len(logs))
	}
	if !hasNext {
		t.Errorf("Expected has-next on page 1")
	}

	logs, hasNext, _ = repo.List(ListOptions{Page: 2, PerPage: 12})
	if len(logs) != 1 {
		t.Errorf("Expected 1 log on page 2, got %d", len(logs))
	}
	if hasNext {
		t.Errorf("Expected no has-next on page 2")
	}
}

func TestList_TagAndBookmarkFilters(t *testing.T) {
	db := setupTestDB(t)
	logRepo := NewLogRepository(db)
	tagRepo := NewTagRepository(db)

	dockerLog, _ := logRepo.CreateLog("docker question", "answer", "md")
	gitLog, _ := logRepo.CreateLog("git question", "answer", "md")

	dockerTag, _, _ := tagRepo.GetOrCreateTag("docker")
	logRepo.AttachTag(dockerLog, dockerTag)

	logRepo.SetBookmarked(gitLog, true)

	logs, _, err := logRepo.List(ListOptions{Tag: "docker", Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("Failed to filter by tag: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != dockerLog {
		t.Errorf("Expected only the docker log, got %v", logs)
	}

	logs, _, err = logRepo.List(ListOptions{Bookmarked: true, Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("Failed to filter by bookmark: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != gitLog {
		t.Errorf("Expected only the bookmarked log, got %v", logs)
	}
}

func TestReferenceExtractionFlow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReferenceRepository(db)

	id, _, err := repo.GetOrCreateReference("https://docs.docker.com/", "Docker Docs", "search excerpt", SourceOfficial)
	if err != nil {
		t.Fatalf("Failed to create reference: %v", err)
	}

	refs, err := repo.GetReferencesForExtraction(10)
	if err != nil {
		t.Fatalf("Failed to get pending references: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != id {
		t.Fatalf("Expected the pending reference, got %v", refs)
	}

	now := time.Now().UTC()
	if err := repo.UpdateExtractedExcerpt(id, "cleaned article excerpt", now); err != nil {
		t.Fatalf("Failed to update excerpt: %v", err)
	}

	refs, _ = repo.GetReferencesForExtraction(10)
	if len(refs) != 0 {
		t.Errorf("Expected no pending references after success, got %d", len(refs))
	}
}

func TestUpdateExtractionStatus_Failed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReferenceRepository(db)

	id, _, _ := repo.GetOrCreateReference("https://example.com/gone", "Gone", "", SourceOther)

	now := time.Now().UTC()
	if err := repo.UpdateExtractionStatus(id, ExtractionFailed, &now, "HTTP error: 404"); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}

	refs, _ := repo.GetReferencesForExtraction(10)
	if len(refs) != 0 {
		t.Errorf("Expected failed reference excluded from pending set, got %d", len(refs))
	}
}
