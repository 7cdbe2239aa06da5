package query

import (
	"regexp"
	"strings"
	"time"

	"github.com/pressfeed/newsearch/internal/article"
)

// Field weights applied to the per-field text score.
const (
	weightTitle      = 10
	weightSummary    = 5
	weightContent    = 2
	weightTags       = 3
	weightCategories = 3
	weightSection    = 1
	weightAuthor     = 1
)

// Additive bonuses independent of any field.
const (
	bonusPublishedToday    = 2
	bonusPublishedThisWeek = 1
	bonusFeatured          = 1
)

// Per-field scoring components.
const (
	bonusFullQueryMatch  = 10
	perWholeWordHit      = 3
	perSubstringHit      = 1
	positionBonusMax     = 5
	positionBonusDivisor = 100
)

// Scorer computes the relevance score of candidate articles against one
// normalised query. Whole-word patterns are compiled once per query, not
// per field.
type Scorer struct {
	query  string
	tokens []string
	now    time.Time
	words  []*regexp.Regexp
}

// NewScorer builds a Scorer for the normalised query string and its token
// list. now anchors the recency bonuses.
func NewScorer(normalizedQuery string, tokens []string, now time.Time) *Scorer {
	words := make([]*regexp.Regexp, len(tokens))
	for i, tok := range tokens {
		words[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(tok) + `\b`)
	}
	return &Scorer{
		query:  normalizedQuery,
		tokens: tokens,
		now:    now,
		words:  words,
	}
}

// Score returns the weighted relevance of rec. Zero means the article is
// a false positive from candidate selection, not a true match.
func (s *Scorer) Score(rec article.Record) float64 {
	total := weightTitle * s.fieldScore(strings.ToLower(rec.Title))
	total += weightSummary * s.fieldScore(strings.ToLower(rec.Summary))
	if rec.Content != "" {
		total += weightContent * s.fieldScore(strings.ToLower(rec.Content))
	}
	if len(rec.Tags) > 0 {
		total += weightTags * s.fieldScore(strings.ToLower(strings.Join(rec.Tags, " ")))
	}
	if len(rec.Categories) > 0 {
		total += weightCategories * s.fieldScore(strings.ToLower(strings.Join(rec.Categories, " ")))
	}
	total += weightSection * s.fieldScore(strings.ToLower(rec.Section))
	if rec.Author != "" {
		total += weightAuthor * s.fieldScore(strings.ToLower(rec.Author))
	}

	if total > 0 {
		age := s.now.Sub(rec.PublishedAt)
		switch {
		case age < 24*time.Hour:
			total += bonusPublishedToday
		case age < 7*24*time.Hour:
			total += bonusPublishedThisWeek
		}
		if rec.Featured {
			total += bonusFeatured
		}
	}
	return float64(total)
}

// fieldScore computes the text score of one lower-cased field value:
// a flat bonus for containing the whole query, per-token whole-word
// occurrence counts (substring occurrences count once when no whole word
// matches), and a positional bonus for early full-query matches.
func (s *Scorer) fieldScore(text string) int {
	if text == "" {
		return 0
	}
	score := 0
	if strings.Contains(text, s.query) {
		score += bonusFullQueryMatch
	}
	for i, tok := range s.tokens {
		hits := len(s.words[i].FindAllStringIndex(text, -1))
		if hits > 0 {
			score += perWholeWordHit * hits
		} else if strings.Contains(text, tok) {
			score += perSubstringHit
		}
	}
	if first := strings.Index(text, s.query); first >= 0 {
		if bonus := positionBonusMax - first/positionBonusDivisor; bonus > 0 {
			score += bonus
		}
	}
	return score
}
