package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/user/learnlog/app/domains"
)

const (
	maxResults  = 5
	searchDepth = "advanced"
)

// Searcher wraps the Tavily search API restricted to official
// documentation domains. Failures never propagate: the pipeline must
// tolerate zero search results at every downstream step, so any
// transport or API error collapses into an empty result list with a
// Fallback marker.
type Searcher struct {
	baseURL string
	apiKey  string
	matcher *domains.Matcher
	client  *http.Client
}

func NewSearcher(baseURL, apiKey string, matcher *domains.Matcher, client *http.Client) *Searcher {
	return &Searcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		matcher: matcher,
		client:  client,
	}
}

type searchRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Run searches official documentation for the question.
func (s *Searcher) Run(ctx context.Context, question string) ([]Result, *Fallback) {
	results, err := s.search(ctx, question)
	if err != nil {
		slog.Error("Search failed, continuing with empty results", "error", err)
		return []Result{}, &Fallback{Reason: err.Error()}
	}

	return results, nil
}

func (s *Searcher) search(ctx context.Context, question string) ([]Result, error) {
	reqBody := searchRequest{
		Query:          question,
		SearchDepth:    searchDepth,
		MaxResults:     maxResults,
		IncludeDomains: s.matcher.Match(question),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search API error: %d %s: %s", resp.StatusCode, resp.Status, body)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if searchResp.Results == nil {
		searchResp.Results = []Result{}
	}

	return searchResp.Results, nil
}
