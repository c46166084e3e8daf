package pipeline

import (
	"context"

	"github.com/user/learnlog/app/llm"
	"github.com/user/learnlog/app/search"
)

type Searcher interface {
	Run(ctx context.Context, question string) ([]search.Result, *search.Fallback)
}

type Answerer interface {
	Run(ctx context.Context, question string, results []search.Result) (string, *llm.Fallback)
}

type Tagger interface {
	Run(ctx context.Context, question, answer string) ([]string, *llm.Fallback)
}

type Formatter interface {
	Run(ctx context.Context, question, answer string, results []search.Result) (string, *llm.Fallback)
}

var (
	_ Searcher  = (*search.Searcher)(nil)
	_ Answerer  = (*llm.Answerer)(nil)
	_ Tagger    = (*llm.Tagger)(nil)
	_ Formatter = (*llm.Formatter)(nil)
)
