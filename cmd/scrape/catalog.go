package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/botd/internal/cmdutil"
	"github.com/lepinkainen/botd/internal/config"
	"github.com/lepinkainen/botd/internal/pipeline"
)

// CatalogParams are the catalog command's inputs.
type CatalogParams struct {
	ShowQuery string
	Output    string
}

// RunCatalog fetches the TVMaze catalog and writes only its payload.
func RunCatalog(ctx context.Context, p CatalogParams) error {
	showQuery := orDefault(p.ShowQuery, orDefault(config.ShowQuery, config.DefaultShowQuery))

	output := cmdutil.ResolvePath(p.Output, "output.tvmaze", config.DefaultTVMazeOutput)

	catalog, fromCache, err := newTVMazeClient().CachedFetchCatalog(ctx, showQuery)
	if err != nil {
		return fmt.Errorf("failed to fetch TVMaze catalog: %w", err)
	}
	slog.Info("Loaded TVMaze catalog", "show", catalog.ShowName(), "episodes", len(catalog.Episodes), "cached", fromCache)

	written, err := pipeline.WriteJSON(pipeline.NewCatalogPayload(showQuery, catalog), output, config.OverwriteFiles)
	if err != nil {
		return fmt.Errorf("failed to write TVMaze data: %w", err)
	}

	if !written {
		_, err = fmt.Fprintf(stdout, "Kept existing TVMaze data at %s\n", output)
		return err
	}
	_, err = fmt.Fprintf(stdout, "Wrote TVMaze data to %s\n", output)
	return err
}
