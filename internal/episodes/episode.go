// Package episodes indexes a canonical episode catalog and resolves
// free-text episode titles against it.
package episodes

// Episode is one canonical catalog entry. Season and Number are nil for
// specials the catalog does not place in a season.
type Episode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season *int   `json:"season"`
	Number *int   `json:"number"`
	URL    string `json:"url"`
}
