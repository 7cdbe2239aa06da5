// Package article defines the domain types shared between the corpus
// sources and the search engine.
package article

import (
	"strings"
	"time"
)

// Record is a single news article as supplied by the corpus collaborator.
// The search engine treats it as read-only and never mutates it.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content,omitempty"`
	Section     string    `json:"section"`
	SectionKey  string    `json:"sectionKey"`
	Categories  []string  `json:"categories,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Featured    bool      `json:"featured"`
}

// ScoredResult is a Record augmented with its relevance score for one
// query. Produced transiently per search, never persisted.
type ScoredResult struct {
	Record
	Score float64 `json:"score"`
}

// Filters is an optional structured predicate applied after scoring. All
// set fields must match (AND); Categories and Tags match if the article
// carries any of the listed values.
type Filters struct {
	Section    string
	DateFrom   time.Time
	DateTo     time.Time
	Author     string
	Categories []string
	Tags       []string
}

// Match reports whether the record satisfies every set filter field. The
// date range is inclusive on both ends; the author filter is a
// case-insensitive substring match.
func (f Filters) Match(rec Record) bool {
	if f.Section != "" {
		if !strings.EqualFold(rec.Section, f.Section) && !strings.EqualFold(rec.SectionKey, f.Section) {
			return false
		}
	}
	if !f.DateFrom.IsZero() && rec.PublishedAt.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && rec.PublishedAt.After(f.DateTo) {
		return false
	}
	if f.Author != "" {
		if !strings.Contains(strings.ToLower(rec.Author), strings.ToLower(f.Author)) {
			return false
		}
	}
	if len(f.Categories) > 0 && !anyOf(rec.Categories, f.Categories) {
		return false
	}
	if len(f.Tags) > 0 && !anyOf(rec.Tags, f.Tags) {
		return false
	}
	return true
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// Stats summarises the current index snapshot for diagnostics.
type Stats struct {
	TotalArticles int `json:"totalArticles"`
	IndexSize     int `json:"indexSize"`
	Sections      int `json:"sections"`
	Categories    int `json:"categories"`
	Tags          int `json:"tags"`
}
