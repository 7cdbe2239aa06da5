package query

import (
	"testing"
	"time"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/index"
)

func ranked(score float64, idx int, published time.Time, rec article.Record) Ranked {
	rec.PublishedAt = published
	return Ranked{
		Article: index.IndexedArticle{Record: rec, ArticleIndex: idx},
		Score:   score,
	}
}

func TestRankOrdersByScoreThenDateThenIndex(t *testing.T) {
	now := time.Now()
	items := []Ranked{
		ranked(5, 0, now.Add(-2*time.Hour), article.Record{ID: "older-low"}),
		ranked(9, 1, now.Add(-3*time.Hour), article.Record{ID: "top"}),
		ranked(5, 2, now.Add(-1*time.Hour), article.Record{ID: "newer-low"}),
		// Same timestamp as "newer-low" so only the article index breaks
		// the tie.
		ranked(5, 3, now.Add(-1*time.Hour), article.Record{ID: "tied-date-higher-index"}),
	}
	got := Rank(items, 0)
	wantOrder := []string{"top", "newer-low", "tied-date-higher-index", "older-low"}
	for i, want := range wantOrder {
		if got[i].Article.ID != want {
			t.Fatalf("position %d = %s, want %s", i, got[i].Article.ID, want)
		}
	}
}

func TestRankTruncates(t *testing.T) {
	now := time.Now()
	items := make([]Ranked, 30)
	for i := range items {
		items[i] = ranked(float64(i), i, now, article.Record{})
	}
	got := Rank(items, 20)
	if len(got) != 20 {
		t.Errorf("len = %d, want 20", len(got))
	}
	if got[0].Score != 29 {
		t.Errorf("top score = %v, want 29", got[0].Score)
	}
}

func TestApplyFiltersSection(t *testing.T) {
	items := []Ranked{
		ranked(3, 0, time.Now(), article.Record{ID: "t", Section: "Technology", SectionKey: "tech"}),
		ranked(2, 1, time.Now(), article.Record{ID: "b", Section: "Business", SectionKey: "business"}),
	}
	got := ApplyFilters(items, &article.Filters{Section: "tech"})
	if len(got) != 1 || got[0].Article.ID != "t" {
		t.Errorf("section filter kept %v", got)
	}
}

func TestApplyFiltersDateRangeInclusive(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	items := []Ranked{
		ranked(1, 0, base, article.Record{ID: "from"}),
		ranked(1, 1, base.Add(day), article.Record{ID: "mid"}),
		ranked(1, 2, base.Add(2*day), article.Record{ID: "to"}),
		ranked(1, 3, base.Add(3*day), article.Record{ID: "out"}),
	}
	f := &article.Filters{DateFrom: base, DateTo: base.Add(2 * day)}
	got := ApplyFilters(items, f)
	if len(got) != 3 {
		t.Fatalf("kept %d items, want 3 (range inclusive on both ends)", len(got))
	}
	for _, it := range got {
		if it.Article.ID == "out" {
			t.Error("out-of-range article survived the date filter")
		}
	}
}

func TestApplyFiltersConjunction(t *testing.T) {
	now := time.Now()
	items := []Ranked{
		ranked(1, 0, now, article.Record{
			ID: "match", Section: "Sports", Author: "Marcus Bell",
			Tags: []string{"olympics"},
		}),
		ranked(1, 1, now, article.Record{
			ID: "wrong-author", Section: "Sports", Author: "Someone Else",
			Tags: []string{"olympics"},
		}),
		ranked(1, 2, now, article.Record{
			ID: "wrong-tag", Section: "Sports", Author: "Marcus Bell",
			Tags: []string{"football"},
		}),
	}
	f := &article.Filters{Section: "sports", Author: "bell", Tags: []string{"olympics"}}
	got := ApplyFilters(items, f)
	if len(got) != 1 || got[0].Article.ID != "match" {
		t.Errorf("conjunction filter kept %v", got)
	}
}

func TestApplyFiltersNilKeepsAll(t *testing.T) {
	items := []Ranked{ranked(1, 0, time.Now(), article.Record{ID: "x"})}
	if got := ApplyFilters(items, nil); len(got) != 1 {
		t.Errorf("nil filter dropped items: %v", got)
	}
}
