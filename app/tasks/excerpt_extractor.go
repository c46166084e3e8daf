package tasks

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

const maxExcerptRunes = 500

type ExcerptExtractor struct{}

func NewExcerptExtractor() *ExcerptExtractor {
	return &ExcerptExtractor{}
}

// Run reduces a fetched HTML page to a plain-text excerpt suitable for
// the reference card and the answer context.
func (e *ExcerptExtractor) Run(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return "", fmt.Errorf("no text extracted from HTML data")
	}

	if utf8.RuneCountInString(text) > maxExcerptRunes {
		runes := []rune(text)
		text = string(runes[:maxExcerptRunes])
	}

	slog.Debug("Excerpt extracted successfully",
		"title", article.Title,
		"excerpt_length", utf8.RuneCountInString(text))

	return text, nil
}
