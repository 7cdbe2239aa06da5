package query

import (
	"sort"
	"strings"

	"github.com/pressfeed/newsearch/internal/index"
)

// maxPhraseWords caps title-derived suggestion phrases at three words.
const maxPhraseWords = 3

// Suggestions produces up to max autocomplete strings for a partial
// query, shortest first. Two sources feed a deduplicating set: indexed
// tokens with the partial as prefix, and 1-to-3-word phrases from article
// titles containing the partial. Candidates are gathered in deterministic
// order (prefix tokens lexicographically, then titles in article order)
// so the cap removes the same entries on every call.
func Suggestions(idx *index.Index, articles []index.IndexedArticle, partial string, max int) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if len(partial) < index.MinTokenLength {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, token := range idx.TokensWithPrefix(partial) {
		add(token)
	}

	for _, art := range articles {
		title := strings.ToLower(art.Title)
		if !strings.Contains(title, partial) {
			continue
		}
		words := strings.Fields(title)
		for i, w := range words {
			if len(w) <= 3 || !strings.Contains(w, partial) {
				continue
			}
			for n := 1; n <= maxPhraseWords && i+n <= len(words); n++ {
				phrase := strings.Join(words[i:i+n], " ")
				if len(phrase) > len(partial) {
					add(phrase)
				}
			}
		}
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) < len(out[j])
	})
	return out
}
