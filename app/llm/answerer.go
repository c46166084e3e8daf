package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/learnlog/app/search"
)

const (
	answerTemperature = 0.7
	answerMaxTokens   = 2000

	// Context window bounds: only the top results feed the prompt, and
	// each result's content is capped.
	answerContextResults = 3
	answerContentLimit   = 400
)

// AnswerFallback is persisted verbatim when answer generation fails;
// downstream steps treat it as an ordinary answer.
const AnswerFallback = "답변 생성 중 오류가 발생했습니다."

const answerPrompt = `당신은 친절하고 정확한 개발 전문가입니다.

사용자 질문: %s

참고 자료:
%s

위 참고 자료를 바탕으로 질문에 대한 명확하고 상세한 답변을 작성해주세요.

요구사항:
- 한국어로 작성
- 기술적으로 정확하게
- 초보자도 이해할 수 있게 설명
- 가능하면 코드 예시 포함
- 간결하지만 핵심은 빠뜨리지 않게`

// Answerer turns a question plus top search excerpts into a natural
// language answer.
type Answerer struct {
	client Completer
}

func NewAnswerer(client Completer) *Answerer {
	return &Answerer{client: client}
}

func (a *Answerer) Run(ctx context.Context, question string, results []search.Result) (string, *Fallback) {
	prompt := fmt.Sprintf(answerPrompt, question, buildContext(results))

	answer, err := a.client.Complete(ctx, prompt, answerTemperature, answerMaxTokens)
	if err != nil {
		slog.Error("Answer generation failed, using fallback", "error", err)
		return AnswerFallback, &Fallback{Reason: err.Error()}
	}

	return strings.TrimSpace(answer), nil
}

func buildContext(results []search.Result) string {
	if len(results) > answerContextResults {
		results = results[:answerContextResults]
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("출처: %s\n내용: %s", r.URL, truncateRunes(r.Content, answerContentLimit)))
	}

	if len(parts) == 0 {
		return "참고 자료 없음"
	}

	return strings.Join(parts, "\n\n")
}
