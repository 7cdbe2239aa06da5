package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/corpus"
	"github.com/pressfeed/newsearch/internal/engine"
	"github.com/pressfeed/newsearch/pkg/config"
)

func benchEngine(b *testing.B, n int) *engine.Engine {
	b.Helper()
	source := corpus.NewStaticSource(map[string][]article.Record{
		"news": syntheticCorpus(n),
	})
	eng := engine.New(source, config.SearchConfig{})
	if err := eng.Refresh(context.Background()); err != nil {
		b.Fatal(err)
	}
	return eng
}

// BenchmarkEngineSearch measures end-to-end query latency at various
// corpus sizes.
func BenchmarkEngineSearch(b *testing.B) {
	sizes := []int{100, 1000, 5000}
	queries := []string{"markets", "energy policy", "olympic", "housing reform quarter"}
	for _, n := range sizes {
		b.Run(fmt.Sprintf("articles_%d", n), func(b *testing.B) {
			eng := benchEngine(b, n)
			ctx := context.Background()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = eng.Search(ctx, queries[i%len(queries)], nil)
			}
		})
	}
}

// BenchmarkEngineSearchFiltered measures query latency with a structured
// filter applied after scoring.
func BenchmarkEngineSearchFiltered(b *testing.B) {
	eng := benchEngine(b, 1000)
	ctx := context.Background()
	filters := &article.Filters{Section: "news", Tags: []string{"energy"}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = eng.Search(ctx, "energy", filters)
	}
}

// BenchmarkEngineSearchParallel measures concurrent read throughput
// against one snapshot.
func BenchmarkEngineSearchParallel(b *testing.B) {
	eng := benchEngine(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			_ = eng.Search(ctx, "markets", nil)
		}
	})
}

// BenchmarkEngineSuggest measures autocomplete generation for partial
// inputs of increasing length.
func BenchmarkEngineSuggest(b *testing.B) {
	eng := benchEngine(b, 1000)
	ctx := context.Background()
	partials := []string{"ma", "mark", "marke"}
	for _, p := range partials {
		b.Run(fmt.Sprintf("partial_%s", p), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = eng.Suggest(ctx, p)
			}
		})
	}
}

// BenchmarkEngineRefresh measures a full fetch-and-rebuild cycle.
func BenchmarkEngineRefresh(b *testing.B) {
	eng := benchEngine(b, 1000)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := eng.Refresh(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
