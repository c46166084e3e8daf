package search

// Result is one web search hit.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Fallback reports that an adapter absorbed a collaborator failure and
// produced its safe default instead. A nil *Fallback means the real call
// succeeded.
type Fallback struct {
	Reason string
}
