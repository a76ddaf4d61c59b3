package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a parameter name for fuzzy comparison: camelCase
// boundaries are dropped, letters are lower-cased and the separators
// '_', '-' and ' ' are removed. "maxCount", "max_count" and "MAX-COUNT"
// all normalize to "maxcount".
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Words splits a name into lower-case words at separators and camelCase
// boundaries: "maxHTTPCount" gives ["max", "http", "count"].
func Words(s string) []string {
	runes := []rune(s)

	var (
		words   []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsWord reports a lower-to-upper transition or the last capital of an
// acronym followed by a lower-case letter.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
