// Package session drives interactive search: it debounces keystrokes,
// dispatches queries against the engine, and delivers results to a
// handler while discarding responses that resolve out of order.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/debounce"
	"github.com/pressfeed/newsearch/internal/engine"
)

// ResultHandler receives the results of a dispatched query. It is called
// from the debounce timer's goroutine.
type ResultHandler func(query string, results []article.ScoredResult)

// SuggestionHandler receives autocomplete suggestions for the current
// input.
type SuggestionHandler func(partial string, suggestions []string)

// Controller owns the debounced input loop for one interactive search
// session. Each keystroke resets the pending timer; only the last input
// within the quiet window dispatches a query. Every dispatched query
// carries a monotonic sequence number and results older than the last
// delivered one are dropped, so a slow early query can never overwrite a
// newer render.
type Controller struct {
	engine    *engine.Engine
	deb       *debounce.Debouncer
	onResults ResultHandler
	onSuggest SuggestionHandler
	logger    *slog.Logger
	seq       atomic.Uint64
	delivered atomic.Uint64
	filtersMu sync.RWMutex
	filters   *article.Filters
}

// New creates a Controller dispatching into eng. window is the debounce
// quiet period; onResults must be non-nil, onSuggest may be nil.
func New(eng *engine.Engine, window time.Duration, onResults ResultHandler, onSuggest SuggestionHandler) *Controller {
	return &Controller{
		engine:    eng,
		deb:       debounce.New(window),
		onResults: onResults,
		onSuggest: onSuggest,
		logger:    slog.Default().With("component", "search-session"),
	}
}

// Input registers a keystroke's worth of query text. The query runs after
// the quiet window elapses without further input.
func (c *Controller) Input(ctx context.Context, text string) {
	c.deb.Trigger(func() {
		c.dispatch(ctx, text)
	})
}

// SetFilters replaces the structured filters applied to subsequent
// queries. nil clears them.
func (c *Controller) SetFilters(f *article.Filters) {
	c.filtersMu.Lock()
	c.filters = f
	c.filtersMu.Unlock()
}

// Refresh rebuilds the engine's index and corpus.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.engine.Refresh(ctx)
}

// Stop cancels any pending dispatch.
func (c *Controller) Stop() {
	c.deb.Stop()
}

func (c *Controller) dispatch(ctx context.Context, text string) {
	seq := c.seq.Add(1)

	c.filtersMu.RLock()
	filters := c.filters
	c.filtersMu.RUnlock()

	results := c.engine.Search(ctx, text, filters)

	// Deliver only if no newer query has rendered meanwhile.
	for {
		last := c.delivered.Load()
		if seq <= last {
			c.logger.Debug("dropping stale results", "query", text, "seq", seq, "delivered", last)
			return
		}
		if c.delivered.CompareAndSwap(last, seq) {
			break
		}
	}
	c.onResults(text, results)

	if c.onSuggest != nil && len(results) == 0 {
		c.onSuggest(text, c.engine.Suggest(ctx, text))
	}
}
