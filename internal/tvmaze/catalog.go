package tvmaze

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/lepinkainen/botd/internal/cache"
	"github.com/lepinkainen/botd/internal/episodes"
	botderrors "github.com/lepinkainen/botd/internal/errors"
	"github.com/lepinkainen/botd/internal/textnorm"
)

const provider = "TVMaze"

// Catalog is a show and its episodes as returned by TVMaze. Show and
// episode objects are kept verbatim so they can be written back out
// without losing fields.
type Catalog struct {
	Show        map[string]json.RawMessage `json:"show"`
	Episodes    []json.RawMessage          `json:"episodes"`
	RetrievedAt time.Time                  `json:"retrieved_at"`
}

type embedded struct {
	Episodes *[]json.RawMessage `json:"episodes"`
}

// FetchCatalog looks up a show by name with its episodes embedded. When the
// search response carries no episodes they are listed by show id instead.
func (c *Client) FetchCatalog(ctx context.Context, query string) (*Catalog, error) {
	params := url.Values{"q": {query}, "embed": {"episodes"}}
	endpoint := fmt.Sprintf("%s/singlesearch/shows?%s", c.baseURL, params.Encode())

	var show map[string]json.RawMessage
	if err := c.getJSON(ctx, endpoint, &show); err != nil {
		return nil, fmt.Errorf("failed to search TVMaze for %q: %w", query, err)
	}
	if show == nil {
		return nil, botderrors.NewCatalogError(provider, "empty show search result")
	}

	catalog := &Catalog{Show: show, RetrievedAt: time.Now().UTC()}

	var emb embedded
	if raw, ok := show["_embedded"]; ok {
		if err := json.Unmarshal(raw, &emb); err != nil {
			return nil, botderrors.NewCatalogError(provider, fmt.Sprintf("malformed _embedded: %v", err))
		}
	}
	delete(show, "_embedded")

	if emb.Episodes != nil {
		catalog.Episodes = *emb.Episodes
		return catalog, nil
	}

	showID, ok := catalog.ShowID()
	if !ok {
		return nil, botderrors.NewCatalogError(provider, "missing show id")
	}

	slog.Debug("Search response has no embedded episodes, listing by show id", "show_id", showID)
	endpoint = fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID)
	if err := c.getJSON(ctx, endpoint, &catalog.Episodes); err != nil {
		return nil, fmt.Errorf("failed to list TVMaze episodes for show %d: %w", showID, err)
	}
	if catalog.Episodes == nil {
		catalog.Episodes = []json.RawMessage{}
	}

	return catalog, nil
}

// CachedFetchCatalog is FetchCatalog backed by the tvmaze cache table.
// Catalogs without episodes are not cached.
// Cache key format: catalog_{slugified_query}
func (c *Client) CachedFetchCatalog(ctx context.Context, query string) (*Catalog, bool, error) {
	cacheKey := "catalog_" + textnorm.Slugify(query)

	catalog, fromCache, err := cache.GetOrFetchWithPolicy(cache.TVMazeTable, cacheKey, func() (*Catalog, error) {
		return c.FetchCatalog(ctx, query)
	}, func(catalog *Catalog) bool {
		return catalog != nil && len(catalog.Episodes) > 0
	})
	if err != nil {
		return nil, false, err
	}
	return catalog, fromCache, nil
}

// ShowID returns the show's TVMaze id.
func (c *Catalog) ShowID() (int, bool) {
	var id *int
	if raw, ok := c.Show["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return 0, false
		}
	}
	if id == nil {
		return 0, false
	}
	return *id, true
}

// ShowName returns the show's name, or "" when absent.
func (c *Catalog) ShowName() string {
	var name string
	if raw, ok := c.Show["name"]; ok {
		_ = json.Unmarshal(raw, &name)
	}
	return name
}

// Canonical decodes the episodes into their matching form.
func (c *Catalog) Canonical() ([]episodes.Episode, error) {
	out := make([]episodes.Episode, 0, len(c.Episodes))
	for i, raw := range c.Episodes {
		var ep episodes.Episode
		if err := json.Unmarshal(raw, &ep); err != nil {
			return nil, botderrors.NewCatalogError(provider, fmt.Sprintf("episode %d: %v", i, err))
		}
		out = append(out, ep)
	}
	return out, nil
}
