package main

import (
	"time"

	"github.com/pressfeed/newsearch/internal/article"
)

// sampleCorpus returns a small built-in corpus so the demo runs without
// any external data source.
func sampleCorpus() map[string][]article.Record {
	now := time.Now()
	return map[string][]article.Record{
		"business": {
			{
				ID:          "biz-1",
				Title:       "Markets rally after rate cut",
				Summary:     "Equities climbed sharply after the central bank lowered rates.",
				Section:     "Business",
				SectionKey:  "business",
				Categories:  []string{"markets", "economy"},
				Tags:        []string{"rates", "stocks"},
				Author:      "Dana Whitfield",
				PublishedAt: now.Add(-2 * time.Hour),
				Featured:    true,
			},
			{
				ID:          "biz-2",
				Title:       "Chipmaker posts record quarterly earnings",
				Summary:     "Strong data center demand lifted revenue past expectations.",
				Section:     "Business",
				SectionKey:  "business",
				Categories:  []string{"technology", "earnings"},
				Tags:        []string{"semiconductors"},
				Author:      "Luis Ortega",
				PublishedAt: now.Add(-30 * time.Hour),
			},
		},
		"technology": {
			{
				ID:          "tech-1",
				Title:       "Open source search engines gain ground",
				Summary:     "Self-hosted full-text search is seeing renewed interest.",
				Content:     "Teams are replacing hosted search products with embedded indexes.",
				Section:     "Technology",
				SectionKey:  "technology",
				Categories:  []string{"software"},
				Tags:        []string{"search", "open-source"},
				Author:      "Priya Raman",
				PublishedAt: now.Add(-4 * 24 * time.Hour),
			},
		},
		"sports": {
			{
				ID:          "spt-1",
				Title:       "Relay team sets national record at trials",
				Summary:     "A blistering final leg sealed the fastest time of the season.",
				Section:     "Sports",
				SectionKey:  "sports",
				Tags:        []string{"olympics", "athletics"},
				Author:      "Marcus Bell",
				PublishedAt: now.Add(-8 * time.Hour),
			},
		},
	}
}
