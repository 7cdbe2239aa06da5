// Package corpus supplies the article collections the engine indexes. A
// Source returns the current corpus as a section-key → articles mapping;
// implementations own fetching, retry, and caching. The engine only ever
// calls Fetch.
package corpus

import (
	"context"
	"sort"
	"sync"

	"github.com/pressfeed/newsearch/internal/article"
)

// MetadataKey is the reserved section key that carries corpus metadata
// instead of articles. It must be skipped when flattening.
const MetadataKey = "_meta"

// Source supplies the current corpus.
type Source interface {
	Fetch(ctx context.Context) (map[string][]article.Record, error)
}

// Flatten collapses a section mapping into one ordered article slice,
// skipping the reserved metadata section. Section keys are visited in
// sorted order so the resulting article indices are deterministic for a
// given corpus.
func Flatten(sections map[string][]article.Record) []article.Record {
	keys := make([]string, 0, len(sections))
	for k := range sections {
		if k == MetadataKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []article.Record
	for _, k := range keys {
		for _, rec := range sections[k] {
			if rec.SectionKey == "" {
				rec.SectionKey = k
			}
			out = append(out, rec)
		}
	}
	return out
}

// StaticSource serves a fixed in-memory corpus. Used by tests and the
// demo frontend; Replace swaps the corpus for subsequent fetches.
type StaticSource struct {
	mu       sync.RWMutex
	sections map[string][]article.Record
}

// NewStaticSource creates a StaticSource over the given sections.
func NewStaticSource(sections map[string][]article.Record) *StaticSource {
	return &StaticSource{sections: sections}
}

// Fetch returns the current corpus.
func (s *StaticSource) Fetch(ctx context.Context) (map[string][]article.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]article.Record, len(s.sections))
	for k, v := range s.sections {
		out[k] = v
	}
	return out, nil
}

// Replace swaps the backing corpus.
func (s *StaticSource) Replace(sections map[string][]article.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = sections
}
