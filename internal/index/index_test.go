package index

import (
	"reflect"
	"testing"

	"github.com/pressfeed/newsearch/internal/article"
)

func buildTestIndex(t *testing.T, titles ...string) (*Index, []IndexedArticle) {
	t.Helper()
	records := make([]article.Record, 0, len(titles))
	for i, title := range titles {
		records = append(records, article.Record{
			ID:    string(rune('a' + i)),
			Title: title,
		})
	}
	return Build(records)
}

func TestBuildAssignsDenseIndices(t *testing.T) {
	_, articles := buildTestIndex(t, "first story", "second story", "third story")
	for i, art := range articles {
		if art.ArticleIndex != i {
			t.Errorf("article %d has index %d", i, art.ArticleIndex)
		}
	}
}

func TestBuildSkipsShortTokens(t *testing.T) {
	idx, _ := buildTestIndex(t, "a big story")
	if got := idx.Postings("a"); got != nil {
		t.Errorf("single-char token indexed: %v", got)
	}
	if got := idx.Postings("big"); len(got) != 1 {
		t.Errorf("expected one posting for %q, got %v", "big", got)
	}
}

func TestBuildPositions(t *testing.T) {
	idx, articles := buildTestIndex(t, "tax cuts and more tax cuts")
	postings := idx.Postings("tax")
	if len(postings) != 1 {
		t.Fatalf("expected one posting, got %d", len(postings))
	}
	text := articles[0].SearchText
	want := []int{0, 18}
	if text != "tax cuts and more tax cuts" {
		t.Fatalf("unexpected search text %q", text)
	}
	if !reflect.DeepEqual(postings[0].Positions, want) {
		t.Errorf("positions = %v, want %v", postings[0].Positions, want)
	}
}

func TestBuildDeduplicatesRepeatedTokens(t *testing.T) {
	idx, _ := buildTestIndex(t, "story story story")
	postings := idx.Postings("story")
	if len(postings) != 1 {
		t.Errorf("repeated token produced %d postings, want 1", len(postings))
	}
	if len(postings[0].Positions) != 3 {
		t.Errorf("positions = %v, want 3 offsets", postings[0].Positions)
	}
}

func TestTokensWithPrefix(t *testing.T) {
	idx, _ := buildTestIndex(t, "technology technical ten tactics")
	got := idx.TokensWithPrefix("tec")
	want := []string{"technical", "technology"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokensWithPrefix(tec) = %v, want %v", got, want)
	}
	if got := idx.TokensWithPrefix("zzz"); got != nil {
		t.Errorf("TokensWithPrefix(zzz) = %v, want nil", got)
	}
}

func TestPrefixesOf(t *testing.T) {
	idx, _ := buildTestIndex(t, "tech news")
	got := idx.PrefixesOf("technology")
	want := []string{"tech"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PrefixesOf(technology) = %v, want %v", got, want)
	}
}

func TestTokensContaining(t *testing.T) {
	idx, _ := buildTestIndex(t, "biotechnology and markets")
	got := idx.TokensContaining("technology")
	want := []string{"biotechnology"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokensContaining(technology) = %v, want %v", got, want)
	}

	// Reverse direction: an indexed token inside the query token.
	got = idx.TokensContaining("stockmarkets")
	want = []string{"markets"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokensContaining(stockmarkets) = %v, want %v", got, want)
	}
}
