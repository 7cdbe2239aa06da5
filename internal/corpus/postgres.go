package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/pressfeed/newsearch/internal/article"
	pkgerrors "github.com/pressfeed/newsearch/pkg/errors"
	"github.com/pressfeed/newsearch/pkg/postgres"
)

// PostgresSource loads the corpus from an articles table, grouping rows by
// section key.
type PostgresSource struct {
	client *postgres.Client
	logger *slog.Logger
}

// NewPostgresSource creates a PostgresSource over an open client.
func NewPostgresSource(client *postgres.Client) *PostgresSource {
	return &PostgresSource{
		client: client,
		logger: slog.Default().With("component", "corpus-postgres"),
	}
}

const selectArticles = `
SELECT id, title, summary, COALESCE(content, ''), section, section_key,
       categories, tags, COALESCE(author, ''), published_at, featured
FROM articles
ORDER BY section_key, published_at DESC`

// Fetch queries every article row and groups the records by section key.
func (s *PostgresSource) Fetch(ctx context.Context) (map[string][]article.Record, error) {
	rows, err := s.client.DB.QueryContext(ctx, selectArticles)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorpusUnavailable, "querying articles: %v", err)
	}
	defer rows.Close()

	sections := make(map[string][]article.Record)
	count := 0
	for rows.Next() {
		var rec article.Record
		var categories, tags pq.StringArray
		err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Summary, &rec.Content,
			&rec.Section, &rec.SectionKey,
			&categories, &tags,
			&rec.Author, &rec.PublishedAt, &rec.Featured,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		rec.Categories = categories
		rec.Tags = tags
		sections[rec.SectionKey] = append(sections[rec.SectionKey], rec)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorpusUnavailable, "iterating articles: %v", err)
	}
	s.logger.Debug("corpus loaded from postgres", "sections", len(sections), "articles", count)
	return sections, nil
}
