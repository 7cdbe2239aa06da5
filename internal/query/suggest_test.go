package query

import (
	"reflect"
	"sort"
	"testing"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/index"
)

func suggestIndex(t *testing.T, titles ...string) (*index.Index, []index.IndexedArticle) {
	t.Helper()
	records := make([]article.Record, 0, len(titles))
	for _, title := range titles {
		records = append(records, article.Record{Title: title})
	}
	return index.Build(records)
}

func TestSuggestionsPrefixTokens(t *testing.T) {
	idx, articles := suggestIndex(t, "Technology budget approved", "Tech briefing daily")
	got := Suggestions(idx, articles, "tec", 8)

	found := false
	for _, s := range got {
		if s == "technology" {
			found = true
		}
	}
	if !found {
		t.Fatalf("suggestions %v missing %q", got, "technology")
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return len(got[i]) < len(got[j]) }) {
		t.Errorf("suggestions not sorted shortest first: %v", got)
	}
}

func TestSuggestionsTitlePhrases(t *testing.T) {
	idx, articles := suggestIndex(t, "Technology budget approved")
	got := Suggestions(idx, articles, "techno", 8)

	want := map[string]bool{
		"technology":                 true,
		"technology budget":          true,
		"technology budget approved": true,
	}
	for _, s := range got {
		delete(want, s)
	}
	if len(want) != 0 {
		t.Errorf("suggestions %v missing phrases %v", got, want)
	}
}

func TestSuggestionsShortPartial(t *testing.T) {
	idx, articles := suggestIndex(t, "Technology budget approved")
	if got := Suggestions(idx, articles, "t", 8); got != nil {
		t.Errorf("short partial produced %v", got)
	}
	if got := Suggestions(idx, articles, "  ", 8); got != nil {
		t.Errorf("blank partial produced %v", got)
	}
}

func TestSuggestionsCap(t *testing.T) {
	idx, articles := suggestIndex(t,
		"tender tenant tennis tenor tenure tendon tensile tension tentative tenfold")
	got := Suggestions(idx, articles, "ten", 8)
	if len(got) > 8 {
		t.Errorf("got %d suggestions, want at most 8", len(got))
	}
}

func TestSuggestionsDeterministic(t *testing.T) {
	idx, articles := suggestIndex(t,
		"tender tenant tennis tenor tenure tendon tensile tension tentative tenfold")
	first := Suggestions(idx, articles, "ten", 8)
	for i := 0; i < 10; i++ {
		if got := Suggestions(idx, articles, "ten", 8); !reflect.DeepEqual(got, first) {
			t.Fatalf("suggestions unstable: %v vs %v", got, first)
		}
	}
}
