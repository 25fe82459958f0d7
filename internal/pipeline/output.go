package pipeline

import (
	"encoding/json"
	"time"

	"github.com/lepinkainen/botd/internal/tvmaze"
)

// Output is the top-level JSON document.
type Output struct {
	SourceURL string           `json:"source_url"`
	ScrapedAt string           `json:"scraped_at"`
	Records   []EnrichedRecord `json:"records"`
	TVMaze    *CatalogSummary  `json:"tvmaze,omitempty"`
}

// CatalogSummary describes the catalog used for enrichment.
type CatalogSummary struct {
	ShowQuery    string      `json:"show_query"`
	RetrievedAt  string      `json:"retrieved_at"`
	ShowID       *int        `json:"show_id"`
	ShowName     *string     `json:"show_name"`
	EpisodeCount int         `json:"episode_count"`
	Output       string      `json:"output"`
	MatchCounts  MatchCounts `json:"match_counts"`
}

// CatalogPayload is the catalog as written to its own file.
type CatalogPayload struct {
	ShowQuery   string                     `json:"show_query"`
	RetrievedAt string                     `json:"retrieved_at"`
	Show        map[string]json.RawMessage `json:"show"`
	Episodes    []json.RawMessage          `json:"episodes"`
}

// Timestamp formats t in UTC with microseconds and an explicit offset,
// e.g. 2025-01-02T03:04:05.000006+00:00.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000-07:00")
}

// NewOutput builds the document for records scraped from sourceURL.
func NewOutput(sourceURL string, scrapedAt time.Time, records []EnrichedRecord) *Output {
	if records == nil {
		records = []EnrichedRecord{}
	}
	return &Output{
		SourceURL: sourceURL,
		ScrapedAt: Timestamp(scrapedAt),
		Records:   records,
	}
}

// NewCatalogPayload prepares catalog for writing.
func NewCatalogPayload(query string, catalog *tvmaze.Catalog) *CatalogPayload {
	eps := catalog.Episodes
	if eps == nil {
		eps = []json.RawMessage{}
	}
	return &CatalogPayload{
		ShowQuery:   query,
		RetrievedAt: Timestamp(catalog.RetrievedAt),
		Show:        catalog.Show,
		Episodes:    eps,
	}
}

// Summarize describes catalog and the match outcome for the main document.
// outputPath is where the catalog payload was written.
func Summarize(query, outputPath string, catalog *tvmaze.Catalog, counts MatchCounts) *CatalogSummary {
	summary := &CatalogSummary{
		ShowQuery:    query,
		RetrievedAt:  Timestamp(catalog.RetrievedAt),
		EpisodeCount: len(catalog.Episodes),
		Output:       outputPath,
		MatchCounts:  counts,
	}
	if id, ok := catalog.ShowID(); ok {
		summary.ShowID = &id
	}
	if name := catalog.ShowName(); name != "" {
		summary.ShowName = &name
	}
	return summary
}
