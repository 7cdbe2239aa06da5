package corpus

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/pkg/metrics"
	pkgredis "github.com/pressfeed/newsearch/pkg/redis"
)

const cacheKey = "corpus:sections"

// CachedSource wraps another Source with a Redis cache. Concurrent cache
// misses are collapsed to a single origin fetch via singleflight. Cache
// failures degrade to the origin; they never fail a fetch on their own.
type CachedSource struct {
	origin  Source
	client  *pkgredis.Client
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCachedSource wraps origin with a Redis-backed cache. metrics may be
// nil.
func NewCachedSource(origin Source, client *pkgredis.Client, ttl time.Duration, m *metrics.Metrics) *CachedSource {
	return &CachedSource{
		origin:  origin,
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  slog.Default().With("component", "corpus-cache"),
	}
}

// Fetch returns the cached corpus when fresh, falling through to the
// origin source on a miss and repopulating the cache.
func (s *CachedSource) Fetch(ctx context.Context) (map[string][]article.Record, error) {
	if sections, ok := s.get(ctx); ok {
		s.countHit()
		return sections, nil
	}
	s.countMiss()

	val, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		if sections, ok := s.get(ctx); ok {
			return sections, nil
		}
		sections, err := s.origin.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.set(ctx, sections)
		return sections, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(map[string][]article.Record), nil
}

// Invalidate drops the cached corpus so the next fetch hits the origin.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, cacheKey)
}

func (s *CachedSource) get(ctx context.Context) (map[string][]article.Record, bool) {
	data, err := s.client.Get(ctx, cacheKey)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			s.logger.Error("cache get failed", "error", err)
		}
		return nil, false
	}
	var sections map[string][]article.Record
	if err := json.Unmarshal([]byte(data), &sections); err != nil {
		s.logger.Error("cache unmarshal failed", "error", err)
		return nil, false
	}
	return sections, true
}

func (s *CachedSource) set(ctx context.Context, sections map[string][]article.Record) {
	data, err := json.Marshal(sections)
	if err != nil {
		s.logger.Error("cache marshal failed", "error", err)
		return
	}
	if err := s.client.Set(ctx, cacheKey, data, s.ttl); err != nil {
		s.logger.Error("cache set failed", "error", err)
	}
}

func (s *CachedSource) countHit() {
	if s.metrics != nil {
		s.metrics.CorpusCacheHits.Inc()
	}
}

func (s *CachedSource) countMiss() {
	if s.metrics != nil {
		s.metrics.CorpusCacheMisses.Inc()
	}
}
