package domains

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// generalDomain is always included in search restrictions: GitHub carries
// useful examples and issue threads for almost every technology.
const generalDomain = "github.com"

type Mapping struct {
	Keyword string   `yaml:"keyword"`
	Domains []string `yaml:"domains"`
}

// Catalog is the configurable data behind the matcher: the keyword →
// documentation domain table and the common terms used as a tag fallback.
type Catalog struct {
	Mappings     []Mapping `yaml:"mappings"`
	FallbackTags []string  `yaml:"fallback_tags"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Mappings:     defaultMappings,
		FallbackTags: defaultFallbackTags,
	}
}

// LoadCatalog reads a catalog override from a YAML file. An empty path
// yields the built-in catalog; a partial file keeps the built-in values
// for whatever it leaves out.
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if len(override.Mappings) > 0 {
		catalog.Mappings = override.Mappings
	}
	if len(override.FallbackTags) > 0 {
		catalog.FallbackTags = override.FallbackTags
	}

	return catalog, nil
}

// Matcher maps question keywords to documentation domains and classifies
// reference URLs. It is immutable after construction and safe for
// concurrent use.
type Matcher struct {
	catalog Catalog
	flat    []string
}

func NewMatcher(catalog Catalog) *Matcher {
	var flat []string
	seen := make(map[string]bool)
	for _, m := range catalog.Mappings {
		for _, d := range m.Domains {
			if !seen[d] {
				seen[d] = true
				flat = append(flat, d)
			}
		}
	}

	return &Matcher{catalog: catalog, flat: flat}
}

// Match returns the documentation domains for a question: the union of
// all table entries whose keyword occurs in the lowercased question, in
// table order, deduplicated, with the general code-hosting domain
// appended when absent. Pure substring containment; no tokenization.
func (m *Matcher) Match(question string) []string {
	lower := strings.ToLower(question)

	var matched []string
	seen := make(map[string]bool)
	for _, mapping := range m.catalog.Mappings {
		if !strings.Contains(lower, mapping.Keyword) {
			continue
		}
		for _, d := range mapping.Domains {
			if !seen[d] {
				seen[d] = true
				matched = append(matched, d)
			}
		}
	}

	if !seen[generalDomain] {
		matched = append(matched, generalDomain)
	}

	return matched
}

// IsOfficialDoc reports whether a URL belongs to any domain in the table.
func (m *Matcher) IsOfficialDoc(url string) bool {
	lower := strings.ToLower(url)
	for _, d := range m.flat {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// ClassifySource derives a reference source type from its URL.
func (m *Matcher) ClassifySource(url string) string {
	lower := strings.ToLower(url)

	switch {
	case strings.Contains(lower, "stackoverflow.com"):
		return "stackoverflow"
	case strings.Contains(lower, "github.com"):
		return "github"
	case m.IsOfficialDoc(lower),
		strings.Contains(lower, "docs."),
		strings.Contains(lower, "documentation"),
		strings.Contains(lower, "doc."):
		return "official"
	case strings.Contains(lower, "blog"),
		strings.Contains(lower, "medium.com"),
		strings.Contains(lower, "dev.to"):
		return "blog"
	default:
		return "other"
	}
}

// FallbackTags returns the configured common-term list for tag fallback.
func (m *Matcher) FallbackTags() []string {
	return m.catalog.FallbackTags
}
