// Package index builds the in-memory inverted index over a flattened
// article collection: search-text normalisation, positional postings, and
// exact/prefix/substring token lookup.
package index

import (
	"strings"
	"unicode"

	"github.com/pressfeed/newsearch/internal/article"
)

// MinTokenLength is the minimum token length indexed and matched. Shorter
// tokens produce excessive false-positive candidates and carry near-zero
// discriminative signal.
const MinTokenLength = 2

// SearchText flattens a record into its searchable text: title, summary,
// content, section, categories, tags, and author joined in that order,
// lower-cased, with every run of non-word characters collapsed to a
// single space. Missing fields contribute nothing. The result is never
// shown to a user; it exists purely for indexing and scoring.
func SearchText(rec article.Record) string {
	parts := []string{
		rec.Title,
		rec.Summary,
		rec.Content,
		rec.Section,
		strings.Join(rec.Categories, " "),
		strings.Join(rec.Tags, " "),
		rec.Author,
	}
	return Normalize(strings.Join(parts, " "))
}

// Normalize lower-cases s, replaces every non-word, non-space character
// run with a single space, collapses repeated whitespace, and trims. The
// same normalisation is applied to queries so that query tokens line up
// with indexed tokens.
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Tokenize splits normalised text into tokens of at least MinTokenLength.
func Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
