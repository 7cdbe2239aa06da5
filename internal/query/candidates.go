// Package query implements the read side of the search core: candidate
// selection, relevance scoring, the filter/rank pipeline, and autocomplete
// suggestions.
package query

import (
	"sort"

	"github.com/pressfeed/newsearch/internal/index"
)

// substringMinLength gates the full-index substring scan: only query
// tokens longer than three characters are eligible.
const substringMinLength = 4

// Selector finds the set of articles that could plausibly match a query.
// Selection is deliberately over-inclusive; precision is restored by
// scoring, not by restricting candidates here.
type Selector struct {
	idx *index.Index

	// fallbackThreshold bounds the substring scan: it only runs when
	// exact and prefix matching selected fewer candidates than this.
	fallbackThreshold int
}

// NewSelector creates a Selector over the given index. fallbackThreshold
// is typically the result cap; zero disables the substring path entirely.
func NewSelector(idx *index.Index, fallbackThreshold int) *Selector {
	return &Selector{idx: idx, fallbackThreshold: fallbackThreshold}
}

// Candidates returns the sorted, deduplicated article indices matching
// any of the query tokens. Per token it unions exact postings and
// bidirectional prefix matches; if that yields too few candidates, a
// bidirectional substring scan runs for tokens long enough to bound its
// false-positive cost.
func (s *Selector) Candidates(tokens []string) []int {
	set := make(map[int]struct{})
	add := func(token string) {
		for _, p := range s.idx.Postings(token) {
			set[p.ArticleIndex] = struct{}{}
		}
	}

	for _, token := range tokens {
		if len(token) < index.MinTokenLength {
			continue
		}
		add(token)
		for _, t := range s.idx.TokensWithPrefix(token) {
			add(t)
		}
		for _, t := range s.idx.PrefixesOf(token) {
			add(t)
		}
	}

	if len(set) < s.fallbackThreshold {
		for _, token := range tokens {
			if len(token) < substringMinLength {
				continue
			}
			for _, t := range s.idx.TokensContaining(token) {
				add(t)
			}
		}
	}

	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
