package query

import (
	"sort"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/index"
)

// Ranked pairs an indexed article with its score for the current query.
type Ranked struct {
	Article index.IndexedArticle
	Score   float64
}

// ApplyFilters drops ranked entries whose record fails the filter
// predicate. A nil filter keeps everything.
func ApplyFilters(items []Ranked, f *article.Filters) []Ranked {
	if f == nil {
		return items
	}
	out := items[:0]
	for _, it := range items {
		if f.Match(it.Article.Record) {
			out = append(out, it)
		}
	}
	return out
}

// Rank orders items by score descending and truncates to limit. Equal
// scores are broken by publish date descending, then by article index
// ascending, so result order is deterministic rather than a sort-stability
// artifact.
func Rank(items []Ranked, limit int) []Ranked {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		pi, pj := items[i].Article.PublishedAt, items[j].Article.PublishedAt
		if !pi.Equal(pj) {
			return pi.After(pj)
		}
		return items[i].Article.ArticleIndex < items[j].Article.ArticleIndex
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Results converts ranked entries to the public result type.
func Results(items []Ranked) []article.ScoredResult {
	out := make([]article.ScoredResult, 0, len(items))
	for _, it := range items {
		out = append(out, article.ScoredResult{
			Record: it.Article.Record,
			Score:  it.Score,
		})
	}
	return out
}
