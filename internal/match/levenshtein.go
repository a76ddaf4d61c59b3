package match

import (
	"cmp"
	"slices"
)

// Distance computes the Levenshtein edit distance between two names,
// counting runes rather than bytes.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// keep the shorter name in the rows
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity is 1 minus the distance of the normalized names divided by the
// longer length; 1.0 means the names normalize to the same text.
func Similarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(na, nb))/float64(longest)
}

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.5

// MaxSuggestions bounds the number of names Closest returns.
const MaxSuggestions = 3

type scored struct {
	name  string
	score float64
	order int
}

// Closest returns up to MaxSuggestions candidates whose similarity to name is
// at least MinSimilarity, best first. A candidate sharing a whole word with
// name scores at least MinSimilarity. Ties keep declaration order.
func Closest(name string, candidates []string) []string {
	var hits []scored

	seen := make(map[string]bool, len(candidates))

	for i, c := range candidates {
		if c == "" || c == name || seen[c] {
			continue
		}

		seen[c] = true

		s := Similarity(name, c)
		if s < MinSimilarity && sharesWord(name, c) {
			s = MinSimilarity
		}

		if s >= MinSimilarity {
			hits = append(hits, scored{name: c, score: s, order: i})
		}
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.order, b.order)
	})

	out := make([]string, 0, min(len(hits), MaxSuggestions))
	for _, h := range hits[:min(len(hits), MaxSuggestions)] {
		out = append(out, h.name)
	}

	return out
}

// sharesWord reports whether a and b have a word of three or more letters in common.
func sharesWord(a, b string) bool {
	words := Words(b)

	for _, w := range Words(a) {
		if len(w) >= 3 && slices.Contains(words, w) {
			return true
		}
	}

	return false
}
