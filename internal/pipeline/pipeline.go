// Package pipeline sequences scraping, catalog matching and the output
// payloads built from them.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/botd/internal/episodes"
	"github.com/lepinkainen/botd/internal/fetch"
	"github.com/lepinkainen/botd/internal/wiki"
)

// MatchCounts tallies match types. All three keys are always present.
type MatchCounts struct {
	Exact   int `json:"exact"`
	Fuzzy   int `json:"fuzzy"`
	Missing int `json:"missing"`
}

// Add counts one result of type t. Unknown types count as missing.
func (c *MatchCounts) Add(t episodes.MatchType) {
	switch t {
	case episodes.Exact:
		c.Exact++
	case episodes.Fuzzy:
		c.Fuzzy++
	default:
		c.Missing++
	}
}

// Total is the number of counted records.
func (c MatchCounts) Total() int {
	return c.Exact + c.Fuzzy + c.Missing
}

// Scrape fetches pageURL and extracts its records.
func Scrape(ctx context.Context, fetcher fetch.Fetcher, pageURL string, opts wiki.Options) ([]wiki.Record, error) {
	slog.Info("Fetching page", "url", pageURL)
	html, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source page: %w", err)
	}

	records, err := wiki.ParseHTML(strings.NewReader(html), pageURL, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("Scraped records", "count", len(records))
	return records, nil
}

// HasRecords reports whether html parses to at least one record. It is the
// keep check for cached wiki pages, so challenge and stub pages are never
// stored.
func HasRecords(pageURL string, opts wiki.Options) func(html string) bool {
	return func(html string) bool {
		records, err := wiki.ParseHTML(strings.NewReader(html), pageURL, opts)
		return err == nil && len(records) > 0
	}
}

// Plain wraps records without enrichment.
func Plain(records []wiki.Record) []EnrichedRecord {
	out := make([]EnrichedRecord, len(records))
	for i, r := range records {
		out[i] = EnrichedRecord{Record: r}
	}
	return out
}

// Enrich matches every record against catalog and counts the outcomes.
// Records are copied, never modified.
func Enrich(records []wiki.Record, catalog []episodes.Episode) ([]EnrichedRecord, MatchCounts) {
	idx := episodes.BuildIndex(catalog)
	slog.Debug("Built episode index", "episodes", idx.Len(), "seasons", len(idx.Seasons()))

	var counts MatchCounts
	out := make([]EnrichedRecord, len(records))
	for i, r := range records {
		res := idx.Match(r.Season, r.EpisodeTitle)
		counts.Add(res.Type)
		if res.Type == episodes.Missing {
			slog.Debug("No catalog match", "season", r.Season, "episode", r.EpisodeTitle)
		}
		out[i] = EnrichedRecord{Record: r, Enrichment: newEnrichment(res)}
	}

	slog.Info("Matched records", "exact", counts.Exact, "fuzzy", counts.Fuzzy, "missing", counts.Missing)
	return out, counts
}
