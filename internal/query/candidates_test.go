package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/index"
)

func testIndex(t *testing.T, titles ...string) *index.Index {
	t.Helper()
	records := make([]article.Record, 0, len(titles))
	for _, title := range titles {
		records = append(records, article.Record{Title: title})
	}
	idx, _ := index.Build(records)
	return idx
}

func candidatesFor(t *testing.T, idx *index.Index, rawQuery string, threshold int) []int {
	t.Helper()
	tokens := strings.Fields(index.Normalize(rawQuery))
	return NewSelector(idx, threshold).Candidates(tokens)
}

func TestCandidatesExact(t *testing.T) {
	idx := testIndex(t, "markets rally", "quiet day")
	got := candidatesFor(t, idx, "markets", 20)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("candidates = %v, want [0]", got)
	}
}

func TestCandidatesPrefixBothDirections(t *testing.T) {
	idx := testIndex(t, "technology news", "tech briefing")

	// Query token is a prefix of indexed "technology".
	got := candidatesFor(t, idx, "techno", 20)
	if !reflect.DeepEqual(got, []int{0, 1}) {
		// "techno" also has indexed prefix "tech" (article 1).
		t.Errorf("candidates(techno) = %v, want [0 1]", got)
	}

	// Indexed "tech" starts with the query token.
	got = candidatesFor(t, idx, "te", 20)
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("candidates(te) = %v, want [0 1]", got)
	}
}

func TestCandidatesSubstringGatedByLength(t *testing.T) {
	idx := testIndex(t, "biotechnology outlook")

	// "tech" (4 chars) is eligible for the substring scan and sits inside
	// "biotechnology".
	got := candidatesFor(t, idx, "tech", 20)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("candidates(tech) = %v, want [0]", got)
	}

	// "gy" is too short for the substring path and matches nothing as an
	// exact token or prefix source.
	got = candidatesFor(t, idx, "gy", 20)
	if len(got) != 0 {
		t.Errorf("candidates(gy) = %v, want none", got)
	}
}

func TestCandidatesSubstringFallbackThreshold(t *testing.T) {
	idx := testIndex(t, "biotechnology outlook", "technology news")

	// With a zero threshold the substring pass never runs, so "otech"
	// (which matches nothing exactly or by prefix) selects nothing.
	got := candidatesFor(t, idx, "otech", 0)
	if len(got) != 0 {
		t.Errorf("candidates with disabled fallback = %v, want none", got)
	}

	got = candidatesFor(t, idx, "otech", 20)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("candidates with fallback = %v, want [0]", got)
	}
}

func TestCandidatesMultiTokenUnion(t *testing.T) {
	idx := testIndex(t, "markets rally", "olympics recap", "quiet news day")
	got := candidatesFor(t, idx, "markets olympics", 20)
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("candidates = %v, want [0 1]", got)
	}
}
