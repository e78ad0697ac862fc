package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so "Açaí" folds to "Acai".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SearchKey folds a display name into a lowercase, diacritic-free form used
// for case-insensitive client lookups.
func SearchKey(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Slugify converts a display name into a URL-safe slug: folded, lowercased,
// runs of non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	key := SearchKey(name)

	var b strings.Builder
	lastHyphen := true // leading separators are dropped
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
