// Package scrape implements the scrape and catalog commands.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lepinkainen/botd/internal/cache"
	"github.com/lepinkainen/botd/internal/cmdutil"
	"github.com/lepinkainen/botd/internal/config"
	"github.com/lepinkainen/botd/internal/fetch"
	"github.com/lepinkainen/botd/internal/pipeline"
	"github.com/lepinkainen/botd/internal/report"
	"github.com/lepinkainen/botd/internal/tvmaze"
	"github.com/lepinkainen/botd/internal/wiki"
)

// Params are the scrape command's inputs. Empty strings fall back to config.
type Params struct {
	URL           string
	Output        string
	CSVOutput     string
	ShowQuery     string
	TVMazeOutput  string
	Denylist      string
	IncludeExtras bool
	SkipTVMaze    bool
	Simple        bool
	Browser       bool
	Review        bool
}

var (
	newFetcher      = defaultFetcher
	newTVMazeClient = defaultTVMazeClient
	now             = time.Now

	stdout io.Writer = os.Stdout
)

func defaultFetcher(browser bool) fetch.Fetcher {
	if browser {
		return fetch.NewBrowserFetcher()
	}
	return fetch.NewHTTPFetcher()
}

// cachedFetcher stores a page only once it parses to records, under a key
// that separates browser renders from plain HTTP responses.
func cachedFetcher(browser bool, sourceURL string, opts wiki.Options) fetch.Fetcher {
	kind := fetch.KindHTTP
	if browser {
		kind = fetch.KindBrowser
	}
	return fetch.NewCached(newFetcher(browser),
		fetch.WithKind(kind),
		fetch.WithKeep(pipeline.HasRecords(sourceURL, opts)),
	)
}

func defaultTVMazeClient() *tvmaze.Client {
	return tvmaze.NewClient(tvmaze.WithBaseURL(config.TVMazeBaseURL))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Run scrapes the page, optionally matches against TVMaze and writes every
// output. Nothing is written unless scraping and matching both succeed.
func Run(ctx context.Context, p Params) error {
	sourceURL := orDefault(p.URL, orDefault(config.SourceURL, config.DefaultSourceURL))
	showQuery := orDefault(p.ShowQuery, orDefault(config.ShowQuery, config.DefaultShowQuery))

	paths := cmdutil.OutputPaths{JSON: p.Output, CSV: p.CSVOutput, TVMaze: p.TVMazeOutput}
	if err := cmdutil.SetupOutputPaths(&paths, p.SkipTVMaze); err != nil {
		return err
	}

	opts, err := parserOptions(p)
	if err != nil {
		return err
	}

	if err := cache.PruneExpired(); err != nil {
		slog.Warn("Failed to prune cache", "error", err)
	}

	records, err := pipeline.Scrape(ctx, cachedFetcher(p.Browser || config.UseBrowser(), sourceURL, opts), sourceURL, opts)
	if err != nil {
		return err
	}

	var (
		enriched []pipeline.EnrichedRecord
		payload  *pipeline.CatalogPayload
		summary  *pipeline.CatalogSummary
	)
	if p.SkipTVMaze {
		enriched = pipeline.Plain(records)
	} else {
		catalog, fromCache, err := newTVMazeClient().CachedFetchCatalog(ctx, showQuery)
		if err != nil {
			return fmt.Errorf("failed to fetch TVMaze catalog: %w", err)
		}
		slog.Info("Loaded TVMaze catalog", "show", catalog.ShowName(), "episodes", len(catalog.Episodes), "cached", fromCache)

		episodeList, err := catalog.Canonical()
		if err != nil {
			return err
		}
		var counts pipeline.MatchCounts
		enriched, counts = pipeline.Enrich(records, episodeList)
		payload = pipeline.NewCatalogPayload(showQuery, catalog)
		summary = pipeline.Summarize(showQuery, paths.TVMaze, catalog, counts)
	}

	output := pipeline.NewOutput(sourceURL, now(), enriched)
	output.TVMaze = summary

	s := report.Summary{
		Records:    len(enriched),
		JSONPath:   paths.JSON,
		CSVPath:    paths.CSV,
		TVMazePath: paths.TVMaze,
	}

	overwrite := config.OverwriteFiles
	if payload != nil {
		written, err := pipeline.WriteJSON(payload, paths.TVMaze, overwrite)
		if err != nil {
			return fmt.Errorf("failed to write TVMaze data: %w", err)
		}
		s.TVMazeKept = !written
	}
	written, err := pipeline.WriteJSON(output, paths.JSON, overwrite)
	if err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	s.JSONKept = !written
	if written, err = pipeline.WriteCSV(enriched, paths.CSV, overwrite); err != nil {
		return fmt.Errorf("failed to write CSV output: %w", err)
	}
	s.CSVKept = !written
	if err := pipeline.WriteDatastore(enriched); err != nil {
		return err
	}

	if p.Review {
		s.Review = report.NeedsReview(enriched)
	}
	if summary != nil {
		counts := summary.MatchCounts
		s.Counts = &counts
		s.Episodes = summary.EpisodeCount
		if summary.ShowName != nil {
			s.ShowName = *summary.ShowName
		}
	}
	return report.Print(stdout, s)
}

func parserOptions(p Params) (wiki.Options, error) {
	opts := wiki.Options{
		Origin:        config.Origin,
		TableClass:    config.TableClass,
		IncludeExtras: p.IncludeExtras,
		LabeledItems:  !p.Simple,
	}

	denylistFile := orDefault(p.Denylist, config.DenylistFile)
	if denylistFile != "" {
		denylist, err := wiki.LoadDenylist(denylistFile)
		if err != nil {
			return opts, err
		}
		slog.Debug("Loaded denylist", "file", denylistFile, "entries", denylist.Len())
		opts.Denylist = denylist
	}
	return opts, nil
}
