package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/pkg/config"
	pkgerrors "github.com/pressfeed/newsearch/pkg/errors"
	"github.com/pressfeed/newsearch/pkg/resilience"
)

// HTTPSource fetches the corpus from a JSON endpoint returning a
// section-key → articles document. Transient failures are retried with
// backoff; a circuit breaker sheds load from an endpoint that stays down.
type HTTPSource struct {
	url     string
	client  *http.Client
	retry   resilience.RetryConfig
	breaker *resilience.Breaker
	logger  *slog.Logger
}

// NewHTTPSource creates an HTTPSource from corpus config.
func NewHTTPSource(cfg config.CorpusConfig) *HTTPSource {
	return &HTTPSource{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		retry:   resilience.RetryConfig{MaxAttempts: cfg.MaxAttempts},
		breaker: resilience.NewBreaker("corpus-http", resilience.BreakerConfig{}),
		logger:  slog.Default().With("component", "corpus-http", "url", cfg.URL),
	}
}

// Fetch GETs and decodes the corpus document.
func (s *HTTPSource) Fetch(ctx context.Context) (map[string][]article.Record, error) {
	var sections map[string][]article.Record
	err := s.breaker.Execute(func() error {
		return resilience.Retry(ctx, "corpus-fetch", s.retry, func() error {
			fetched, err := s.fetchOnce(ctx)
			if err != nil {
				return err
			}
			sections = fetched
			return nil
		})
	})
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorpusUnavailable, "http fetch: %v", err)
	}
	total := 0
	for key, articles := range sections {
		if key != MetadataKey {
			total += len(articles)
		}
	}
	s.logger.Debug("corpus fetched", "sections", len(sections), "articles", total)
	return sections, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context) (map[string][]article.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching corpus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("corpus endpoint returned %s", resp.Status)
	}

	var sections map[string][]article.Record
	if err := json.NewDecoder(resp.Body).Decode(&sections); err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrMalformedCorpus, "decoding corpus: %v", err)
	}
	return sections, nil
}
