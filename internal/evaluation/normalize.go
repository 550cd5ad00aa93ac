package evaluation

import (
	"strings"
	"unicode"
)

// listeningSymbols are stripped from listening answers ahead of punctuation.
const listeningSymbols = "$£€%"

// NormalizeForReading lowercases s, drops punctuation and collapses whitespace runs
// to a single space with no leading or trailing space.
func NormalizeForReading(s string) string {
	return normalize(s, func(r rune) bool { return unicode.IsPunct(r) })
}

// NormalizeForListening is NormalizeForReading that also drops currency and percent
// symbols, so "$50" and "50" compare equal.
func NormalizeForListening(s string) string {
	return normalize(s, func(r rune) bool {
		return strings.ContainsRune(listeningSymbols, r) || unicode.IsPunct(r)
	})
}

func normalize(s string, drop func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case drop(r):
			// skip
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
