package cache

import "fmt"

// Cache table names. Every table shares the cache_key/data/cached_at layout.
const (
	TVMazeTable = "tvmaze_cache"
	WikiTable   = "wiki_cache"
)

// Sources maps the user-facing source name to its cache table.
var Sources = map[string]string{
	"tvmaze": TVMazeTable,
	"wiki":   WikiTable,
}

func tableSchema(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_cached_at ON %[1]s(cached_at);
`, table)
}

// TVMazeCacheSchema holds show lookups and episode listings.
var TVMazeCacheSchema = tableSchema(TVMazeTable)

// WikiCacheSchema holds fetched wiki page HTML keyed by URL.
var WikiCacheSchema = tableSchema(WikiTable)

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	TVMazeCacheSchema,
	WikiCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	TVMazeTable: true,
	WikiTable:   true,
}
