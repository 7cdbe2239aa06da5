// Package engine exposes the public search contract: Search, Suggest,
// facet listing, Refresh, Stats, and Related. An Engine is constructed
// explicitly with an injected corpus source; there is no package-level
// instance.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/corpus"
	"github.com/pressfeed/newsearch/internal/index"
	"github.com/pressfeed/newsearch/internal/query"
	"github.com/pressfeed/newsearch/pkg/config"
	pkgerrors "github.com/pressfeed/newsearch/pkg/errors"
	"github.com/pressfeed/newsearch/pkg/metrics"
)

// snapshot is one atomically-swapped index generation. Queries read a
// snapshot pointer once and never observe a partial rebuild; a refresh
// racing an in-flight query simply lets that query finish against the old
// generation.
type snapshot struct {
	articles   []index.IndexedArticle
	idx        *index.Index
	sections   []string
	categories []string
	tags       []string
}

// Engine owns the index lifecycle and serves queries against the current
// snapshot. All methods are safe for concurrent use; Refresh calls are
// coalesced.
type Engine struct {
	source  corpus.Source
	cfg     config.SearchConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
	snap    atomic.Pointer[snapshot]
	group   singleflight.Group
	now     func() time.Time
}

// Option customises Engine construction.
type Option func(*Engine)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the time source used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine over the given corpus source. The index is empty
// until the first Refresh.
func New(source corpus.Source, cfg config.SearchConfig, opts ...Option) *Engine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 8
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = index.MinTokenLength
	}
	e := &Engine{
		source: source,
		cfg:    cfg,
		logger: slog.Default().With("component", "search-engine"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh discards the current snapshot and rebuilds index and article
// collection from a fresh corpus fetch. Concurrent calls share one
// rebuild. On failure the previous snapshot keeps serving and the error
// wraps ErrCorpusUnavailable.
func (e *Engine) Refresh(ctx context.Context) error {
	_, err, _ := e.group.Do("refresh", func() (interface{}, error) {
		return nil, e.rebuild(ctx)
	})
	return err
}

func (e *Engine) rebuild(ctx context.Context) error {
	start := time.Now()
	sections, err := e.source.Fetch(ctx)
	if err != nil {
		e.countRefresh("error")
		e.logger.Error("corpus fetch failed, keeping previous snapshot", "error", err)
		if errors.Is(err, pkgerrors.ErrCorpusUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", pkgerrors.ErrCorpusUnavailable, err)
	}

	records := corpus.Flatten(sections)
	idx, articles := index.Build(records)
	snap := &snapshot{
		articles:   articles,
		idx:        idx,
		sections:   facetValues(articles, func(a index.IndexedArticle) []string { return []string{a.Section} }),
		categories: facetValues(articles, func(a index.IndexedArticle) []string { return a.Categories }),
		tags:       facetValues(articles, func(a index.IndexedArticle) []string { return a.Tags }),
	}
	e.snap.Store(snap)

	elapsed := time.Since(start)
	e.countRefresh("ok")
	if e.metrics != nil {
		e.metrics.RefreshDuration.Observe(elapsed.Seconds())
		e.metrics.IndexedArticles.Set(float64(len(articles)))
		e.metrics.IndexTokens.Set(float64(idx.Size()))
	}
	e.logger.Info("index rebuilt",
		"articles", len(articles),
		"tokens", idx.Size(),
		"sections", len(snap.sections),
		"elapsed", elapsed,
	)
	return nil
}

// Search runs a fuzzy multi-term query and returns scored results, best
// first, capped at the configured maximum. Queries shorter than the
// minimum length and internal failures both yield an empty slice; search
// is best-effort and never propagates a failure to the caller.
func (e *Engine) Search(ctx context.Context, rawQuery string, filters *article.Filters) (results []article.ScoredResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("search panicked, returning empty results", "query", rawQuery, "panic", r)
			e.countSearch("error")
			results = nil
		}
		if e.metrics != nil {
			e.metrics.SearchLatency.Observe(time.Since(start).Seconds())
			e.metrics.SearchResultsCount.Observe(float64(len(results)))
		}
	}()

	normalized := index.Normalize(rawQuery)
	if len(normalized) < e.cfg.MinQueryLength {
		e.countSearch("too_short")
		return nil
	}
	snap := e.snap.Load()
	if snap == nil {
		e.logger.Warn("search before first successful refresh", "query", rawQuery)
		e.countSearch("error")
		return nil
	}

	tokens := strings.Fields(normalized)
	selector := query.NewSelector(snap.idx, e.cfg.MaxResults)
	candidates := selector.Candidates(tokens)
	if e.metrics != nil {
		e.metrics.CandidatesCount.Observe(float64(len(candidates)))
	}

	scorer := query.NewScorer(normalized, tokens, e.now())
	ranked := make([]query.Ranked, 0, len(candidates))
	for _, articleIndex := range candidates {
		art := snap.articles[articleIndex]
		score := scorer.Score(art.Record)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, query.Ranked{Article: art, Score: score})
	}

	ranked = query.ApplyFilters(ranked, filters)
	ranked = query.Rank(ranked, e.cfg.MaxResults)
	if len(ranked) == 0 {
		e.countSearch("zero_result")
	} else {
		e.countSearch("hit")
	}
	return query.Results(ranked)
}

// Suggest returns up to the configured number of autocomplete strings for
// a partial query, shortest first.
func (e *Engine) Suggest(ctx context.Context, partial string) (suggestions []string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("suggest panicked, returning empty list", "partial", partial, "panic", r)
			suggestions = nil
		}
	}()
	if e.metrics != nil {
		e.metrics.SuggestionsTotal.Inc()
	}
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	return query.Suggestions(snap.idx, snap.articles, partial, e.cfg.MaxSuggestions)
}

// Sections returns the sorted, deduplicated section names in the corpus.
func (e *Engine) Sections() []string {
	if snap := e.snap.Load(); snap != nil {
		return snap.sections
	}
	return nil
}

// Categories returns the sorted, deduplicated category values.
func (e *Engine) Categories() []string {
	if snap := e.snap.Load(); snap != nil {
		return snap.categories
	}
	return nil
}

// Tags returns the sorted, deduplicated tag values.
func (e *Engine) Tags() []string {
	if snap := e.snap.Load(); snap != nil {
		return snap.tags
	}
	return nil
}

// Stats reports counts for the current snapshot.
func (e *Engine) Stats() article.Stats {
	snap := e.snap.Load()
	if snap == nil {
		return article.Stats{}
	}
	return article.Stats{
		TotalArticles: len(snap.articles),
		IndexSize:     snap.idx.Size(),
		Sections:      len(snap.sections),
		Categories:    len(snap.categories),
		Tags:          len(snap.tags),
	}
}

func (e *Engine) countSearch(outcome string) {
	if e.metrics != nil {
		e.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	}
}

func (e *Engine) countRefresh(status string) {
	if e.metrics != nil {
		e.metrics.RefreshesTotal.WithLabelValues(status).Inc()
	}
}

// facetValues collects, deduplicates case-insensitively, and sorts the
// non-empty values produced by extract across all articles.
func facetValues(articles []index.IndexedArticle, extract func(index.IndexedArticle) []string) []string {
	seen := make(map[string]string)
	for _, art := range articles {
		for _, v := range extract(art) {
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, dup := seen[key]; !dup {
				seen[key] = v
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
