package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pressfeed/newsearch/internal/article"
)

// Relatedness weights: sharing the section matters most, then tags, then
// categories, with a small recency nudge so fresh coverage surfaces first.
const (
	relatedSectionWeight  = 5
	relatedTagWeight      = 3
	relatedCategoryWeight = 2
)

// Related returns up to limit articles related to the article with the
// given ID, ranked by shared section, tags, and categories. An unknown ID
// or an empty snapshot yields an empty slice.
func (e *Engine) Related(ctx context.Context, id string, limit int) []article.ScoredResult {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	if limit <= 0 {
		limit = e.cfg.MaxResults
	}

	var base *article.Record
	for i := range snap.articles {
		if snap.articles[i].ID == id {
			base = &snap.articles[i].Record
			break
		}
	}
	if base == nil {
		return nil
	}

	now := e.now()
	scored := make([]article.ScoredResult, 0, limit)
	for i := range snap.articles {
		rec := snap.articles[i].Record
		if rec.ID == id {
			continue
		}
		score := relatedScore(*base, rec, now)
		if score <= 0 {
			continue
		}
		scored = append(scored, article.ScoredResult{Record: rec, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].PublishedAt.After(scored[j].PublishedAt)
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func relatedScore(base, other article.Record, now time.Time) float64 {
	score := 0
	if strings.EqualFold(base.SectionKey, other.SectionKey) ||
		strings.EqualFold(base.Section, other.Section) {
		score += relatedSectionWeight
	}
	score += relatedTagWeight * sharedValues(base.Tags, other.Tags)
	score += relatedCategoryWeight * sharedValues(base.Categories, other.Categories)
	if score > 0 {
		if age := now.Sub(other.PublishedAt); age < 7*24*time.Hour {
			score++
		}
	}
	return float64(score)
}

func sharedValues(a, b []string) int {
	count := 0
	for _, av := range a {
		for _, bv := range b {
			if strings.EqualFold(av, bv) {
				count++
				break
			}
		}
	}
	return count
}
