package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Completer is a single-prompt chat completion call. Each adapter uses
// its own temperature and output cap, so both are parameters rather
// than client state.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

var _ Completer = (*GroqClient)(nil)

// GroqClient talks to Groq through its OpenAI-compatible API.
type GroqClient struct {
	client *openai.Client
	model  string
}

func NewGroqClient(baseURL, apiKey, model string) *GroqClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &GroqClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *GroqClient) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

// Fallback reports that an adapter absorbed a collaborator failure and
// returned its safe default instead. A nil *Fallback means the real
// call succeeded.
type Fallback struct {
	Reason string
}

// truncateRunes bounds a string to n runes. Prompts budget context in
// characters, not bytes, so multi-byte text must not be cut mid-rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
