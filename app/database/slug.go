package database

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a tag name into a URL-safe slug: diacritics are
// stripped via NFD decomposition, everything outside [a-z0-9] collapses
// into single hyphens.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, name)
	if err != nil {
		ascii = name
	}

	slug := strings.ToLower(ascii)
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	// Non-latin names (e.g. Korean tags) reduce to nothing above; keep
	// them unique by falling back to the lowercased name itself.
	if slug == "" {
		slug = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	}

	return slug
}
