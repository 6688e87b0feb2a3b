// Package slugutil derives URL- and anchor-safe identifiers from
// human-readable text and from content storage paths. Both functions are
// pure: identical input always yields an identical slug, which is what keeps
// heading anchors and post URLs link-stable across rebuilds.
package slugutil

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAnchorChars = regexp.MustCompile(`[^a-z0-9\-\s]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// ForAnchor turns heading text into an in-page anchor slug: accents are
// folded, the result is lower-cased, characters outside [a-z0-9-\s] are
// stripped, and whitespace runs collapse to single hyphens.
//
// Slugs are NOT deduplicated; two headings in one post that normalize to the
// same anchor will share it, and the last one wins when dereferenced by
// fragment.
func ForAnchor(text string) string {
	folded, _, err := transform.String(foldTransformer(), text)
	if err != nil {
		folded = text
	}
	s := strings.ToLower(folded)
	s = nonAnchorChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return whitespaceRun.ReplaceAllString(s, "-")
}

// ForContentID returns the canonical content id for a post stored at the
// given path: the base folder name, verbatim. No transliteration is applied;
// authors are responsible for choosing URL-safe folder names. The id is
// computed once at discovery time and never recomputed from the post title,
// so renaming a title never changes a URL.
func ForContentID(storagePath string) string {
	return filepath.Base(filepath.Clean(storagePath))
}

// foldTransformer decomposes to NFD, drops combining marks, and recomposes,
// so that e.g. "café" contributes "cafe" to an anchor.
func foldTransformer() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
