package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/learnlog/app/domains"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) (*Searcher, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	matcher := domains.NewMatcher(domains.DefaultCatalog())
	return NewSearcher(server.URL, "test-key", matcher, server.Client()), server
}

func TestSearcher_Run_Success(t *testing.T) {
	var gotReq searchRequest
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected path /search, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}

		json.NewEncoder(w).Encode(searchResponse{Results: []Result{
			{URL: "https://docs.docker.com/network/", Title: "Networking", Content: "Docker networking overview"},
			{URL: "https://github.com/moby/moby", Title: "moby", Content: "repo"},
		}})
	})

	results, fb := searcher.Run(context.Background(), "docker bridge network")

	if fb != nil {
		t.Fatalf("Expected no fallback, got %+v", fb)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://docs.docker.com/network/" {
		t.Errorf("Unexpected first result: %+v", results[0])
	}

	if gotReq.SearchDepth != "advanced" {
		t.Errorf("Expected advanced depth, got %q", gotReq.SearchDepth)
	}
	if gotReq.MaxResults != 5 {
		t.Errorf("Expected max_results 5, got %d", gotReq.MaxResults)
	}

	foundDocker := false
	for _, d := range gotReq.IncludeDomains {
		if d == "docs.docker.com" {
			foundDocker = true
		}
	}
	if !foundDocker {
		t.Errorf("Expected docs.docker.com in include_domains, got %v", gotReq.IncludeDomains)
	}
}

func TestSearcher_Run_APIErrorReturnsEmptyWithFallback(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	results, fb := searcher.Run(context.Background(), "docker bridge network")

	if fb == nil {
		t.Fatal("Expected fallback on API error")
	}
	if fb.Reason == "" {
		t.Error("Expected fallback reason to carry the error")
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results))
	}
}

func TestSearcher_Run_MalformedResponseReturnsEmptyWithFallback(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	results, fb := searcher.Run(context.Background(), "docker bridge network")

	if fb == nil {
		t.Fatal("Expected fallback on malformed response")
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results))
	}
}

func TestSearcher_Run_TransportErrorReturnsEmptyWithFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection refused

	matcher := domains.NewMatcher(domains.DefaultCatalog())
	searcher := NewSearcher(server.URL, "test-key", matcher, http.DefaultClient)

	results, fb := searcher.Run(context.Background(), "docker bridge network")

	if fb == nil {
		t.Fatal("Expected fallback on transport error")
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results))
	}
}

func TestSearcher_Run_NullResultsBecomeEmptySlice(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": null}`))
	})

	results, fb := searcher.Run(context.Background(), "docker bridge network")

	if fb != nil {
		t.Fatalf("Expected no fallback, got %+v", fb)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", results)
	}
}
