package index

import (
	"sort"
	"strings"

	"github.com/pressfeed/newsearch/internal/article"
)

// Posting links a token to one article and the character offsets where it
// occurs within that article's search text.
type Posting struct {
	ArticleIndex int
	Token        string
	Positions    []int
}

// IndexedArticle is a Record plus its precomputed search text and its
// dense position in the indexed collection. The position is the join key
// between postings and articles; it is only valid against the snapshot it
// was built with.
type IndexedArticle struct {
	article.Record
	SearchText   string
	ArticleIndex int
}

// Index maps tokens to positional postings. It also keeps the token set
// as a sorted slice so that prefix lookups are range scans instead of
// full-map iterations.
type Index struct {
	postings map[string][]Posting
	tokens   []string
}

// Build flattens the records into IndexedArticles and constructs the
// inverted index over them. Article indices are assigned in input order.
func Build(records []article.Record) (*Index, []IndexedArticle) {
	articles := make([]IndexedArticle, 0, len(records))
	for i, rec := range records {
		articles = append(articles, IndexedArticle{
			Record:       rec,
			SearchText:   SearchText(rec),
			ArticleIndex: i,
		})
	}

	idx := &Index{postings: make(map[string][]Posting)}
	for _, art := range articles {
		seen := make(map[string]struct{})
		for _, token := range Tokenize(art.SearchText) {
			// A repeated token contributes one posting; its positions
			// list already covers every occurrence.
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			idx.postings[token] = append(idx.postings[token], Posting{
				ArticleIndex: art.ArticleIndex,
				Token:        token,
				Positions:    findPositions(art.SearchText, token),
			})
		}
	}

	idx.tokens = make([]string, 0, len(idx.postings))
	for token := range idx.postings {
		idx.tokens = append(idx.tokens, token)
	}
	sort.Strings(idx.tokens)
	return idx, articles
}

// findPositions returns every starting offset of token within text, found
// by non-overlapping forward scan.
func findPositions(text, token string) []int {
	var positions []int
	offset := 0
	for {
		i := strings.Index(text[offset:], token)
		if i < 0 {
			return positions
		}
		positions = append(positions, offset+i)
		offset += i + len(token)
	}
}

// Postings returns the posting list for an exact token, or nil.
func (x *Index) Postings(token string) []Posting {
	return x.postings[token]
}

// Tokens returns the sorted token set.
func (x *Index) Tokens() []string {
	return x.tokens
}

// Size returns the number of distinct tokens.
func (x *Index) Size() int {
	return len(x.tokens)
}

// TokensWithPrefix returns, in lexicographic order, every indexed token
// that starts with prefix. The sorted token slice makes this a binary
// search plus a bounded scan.
func (x *Index) TokensWithPrefix(prefix string) []string {
	lo := sort.SearchStrings(x.tokens, prefix)
	var out []string
	for i := lo; i < len(x.tokens) && strings.HasPrefix(x.tokens[i], prefix); i++ {
		out = append(out, x.tokens[i])
	}
	return out
}

// PrefixesOf returns every indexed token that is a proper prefix of the
// query token, via direct lookups of each prefix of length MinTokenLength
// or more.
func (x *Index) PrefixesOf(token string) []string {
	var out []string
	for i := MinTokenLength; i < len(token); i++ {
		if _, ok := x.postings[token[:i]]; ok {
			out = append(out, token[:i])
		}
	}
	return out
}

// TokensContaining scans the full token set for bidirectional substring
// matches: indexed tokens containing the query token, and indexed tokens
// contained within it. This is the costliest lookup path; callers gate it.
func (x *Index) TokensContaining(token string) []string {
	var out []string
	for _, t := range x.tokens {
		if t == token {
			continue
		}
		if strings.Contains(t, token) || strings.Contains(token, t) {
			out = append(out, t)
		}
	}
	return out
}
