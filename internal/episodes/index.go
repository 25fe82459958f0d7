package episodes

import (
	"sort"

	"github.com/lepinkainen/botd/internal/textnorm"
)

type seasonIndex struct {
	// keys keeps first-seen order so fuzzy ties resolve deterministically.
	keys    []string
	entries map[string][]Episode
}

// Index maps season and normalized title to the episodes carrying that title.
// It is built once and read-only afterwards.
type Index struct {
	seasons map[int]*seasonIndex
	size    int
}

// BuildIndex indexes episodes in catalog order. Episodes without a season
// or with a name that normalizes to nothing are skipped.
func BuildIndex(catalog []Episode) *Index {
	idx := &Index{seasons: make(map[int]*seasonIndex)}

	for _, ep := range catalog {
		if ep.Season == nil || ep.Name == "" {
			continue
		}
		key := textnorm.Normalize(ep.Name)
		if key == "" {
			continue
		}

		season, ok := idx.seasons[*ep.Season]
		if !ok {
			season = &seasonIndex{entries: make(map[string][]Episode)}
			idx.seasons[*ep.Season] = season
		}
		if _, seen := season.entries[key]; !seen {
			season.keys = append(season.keys, key)
		}
		season.entries[key] = append(season.entries[key], ep)
		idx.size++
	}

	return idx
}

// Lookup returns the episodes indexed under season and normalized title.
func (idx *Index) Lookup(season int, key string) []Episode {
	s, ok := idx.seasons[season]
	if !ok {
		return nil
	}
	return s.entries[key]
}

// Seasons lists indexed seasons in ascending order.
func (idx *Index) Seasons() []int {
	seasons := make([]int, 0, len(idx.seasons))
	for s := range idx.seasons {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)
	return seasons
}

// Len is the number of indexed episodes.
func (idx *Index) Len() int {
	return idx.size
}
