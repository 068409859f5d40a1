package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes characters and strips combining marks, so that
// accented characters compare equal to their base form ("Pokémon" and
// "Pokemon" produce the same key).
var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// TitleKey normalizes a title into a case- and punctuation-insensitive
// comparison key. Diacritics are folded, letters lowercased, digits kept,
// and every other character treated as a word separator. Words are joined
// with single spaces.
func TitleKey(title string) string {
	folded, _, err := transform.String(foldTransformer, title)
	if err != nil {
		// Transformation only fails on malformed input; fall back to the
		// raw string so the key is still deterministic.
		folded = title
	}

	var b strings.Builder
	lastSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
			lastSpace = false
		case unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// EqualTitles reports whether two titles normalize to the same key.
func EqualTitles(a, b string) bool {
	return TitleKey(a) == TitleKey(b)
}
