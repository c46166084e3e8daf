package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/learnlog/app/search"
)

const (
	markdownTemperature = 0.5
	markdownMaxTokens   = 3000
)

const markdownPrompt = `다음 내용을 노션 스타일 마크다운으로 정리해주세요:

질문: %s

답변:
%s

참고 자료:
%s

요구사항:
- 제목은 ## 질문 형식으로
- 핵심 내용은 명확하게 구조화
- 차이점이나 비교는 표(table) 사용
- 코드 예시는 적절한 언어로 ` + "```언어 코드블록```" + ` 사용
- 참고 자료는 맨 아래 "## 참고 자료" 섹션에
- 노션에 바로 복사/붙여넣기 가능하게
- 이모지 적절히 사용

출력:`

// Formatter reformats an answer and its references into structured
// markdown notes. On failure it renders a fixed deterministic template
// instead of retrying the model.
type Formatter struct {
	client Completer
}

func NewFormatter(client Completer) *Formatter {
	return &Formatter{client: client}
}

func (f *Formatter) Run(ctx context.Context, question, answer string, results []search.Result) (string, *Fallback) {
	refs := referenceList(results)

	prompt := fmt.Sprintf(markdownPrompt, question, answer, refs)

	markdown, err := f.client.Complete(ctx, prompt, markdownTemperature, markdownMaxTokens)
	if err != nil {
		slog.Error("Markdown formatting failed, using template fallback", "error", err)
		return fallbackMarkdown(question, answer, refs), &Fallback{Reason: err.Error()}
	}

	return strings.TrimSpace(markdown), nil
}

// referenceList renders every search result (not just the answer's top
// three) as a markdown bullet link.
func referenceList(results []search.Result) string {
	if len(results) == 0 {
		return "없음"
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- [%s](%s)", title, r.URL))
	}

	return strings.Join(lines, "\n")
}

func fallbackMarkdown(question, answer, refs string) string {
	return fmt.Sprintf("## %s\n\n%s\n\n## 참고 자료\n%s", question, answer, refs)
}
