package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	tagTemperature = 0.2
	tagMaxTokens   = 50

	tagAnswerLimit  = 500
	maxTags         = 5
	maxFallbackTags = 3
)

// GeneralTag is the sentinel returned when even the fallback term scan
// finds nothing.
const GeneralTag = "general"

const tagPrompt = `다음 개발 질문과 답변에서 핵심 기술 태그를 추출해주세요.

질문: %s
답변: %s

규칙:
- 정확히 3~5개의 태그만 추출
- 모두 소문자, 영어만 사용
- 쉼표로 구분
- 기술명, 도구명, 핵심 개념만 포함
- 불필요한 단어 제외 (예: "how", "what", "difference")
- 공백은 하이픈(-)으로 대체

출력 형식 예시: docker, network, bridge-mode, container

태그:`

// Tagger derives normalized lowercase tags from a question and answer.
// On API failure it falls back to scanning the question for a fixed
// list of common terms; the fallback never calls the API again.
type Tagger struct {
	client        Completer
	fallbackTerms []string
}

func NewTagger(client Completer, fallbackTerms []string) *Tagger {
	return &Tagger{client: client, fallbackTerms: fallbackTerms}
}

func (t *Tagger) Run(ctx context.Context, question, answer string) ([]string, *Fallback) {
	prompt := fmt.Sprintf(tagPrompt, question, truncateRunes(answer, tagAnswerLimit))

	raw, err := t.client.Complete(ctx, prompt, tagTemperature, tagMaxTokens)
	if err != nil {
		slog.Error("Tag extraction failed, using keyword fallback", "error", err)
		return t.fallbackTags(question), &Fallback{Reason: err.Error()}
	}

	tags := parseTags(raw)
	if len(tags) == 0 {
		slog.Warn("Tag extraction returned no usable tags, using keyword fallback", "raw", raw)
		return t.fallbackTags(question), &Fallback{Reason: "no usable tags in model output"}
	}

	return tags, nil
}

// parseTags splits comma-separated model output into normalized tags:
// trimmed, lowercased, internal spaces replaced with hyphens, empty and
// single-rune tokens discarded, capped at maxTags.
func parseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(strings.TrimSpace(raw), ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || utf8.RuneCountInString(tag) <= 1 {
			continue
		}
		tag = strings.ToLower(tag)
		tag = strings.ReplaceAll(tag, " ", "-")
		tags = append(tags, tag)

		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

func (t *Tagger) fallbackTags(question string) []string {
	lower := strings.ToLower(question)

	var tags []string
	for _, term := range t.fallbackTerms {
		if strings.Contains(lower, term) {
			tags = append(tags, term)
			if len(tags) == maxFallbackTags {
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{GeneralTag}
	}

	return tags
}
