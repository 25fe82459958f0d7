// Package wiki extracts Burger of the Day records from the fandom wiki page.
//
// The page groups episodes under "Season N" headings. Each season holds one or
// more tables classed BOTD whose rows carry an episode cell (bold link), an
// item cell and a reference cell, with the episode cell omitted on rows that
// continue the previous episode.
package wiki

// Record is a single burger appearance scraped from the page.
type Record struct {
	Season       int     `json:"season"`
	EpisodeTitle string  `json:"episode_title"`
	EpisodeURL   *string `json:"episode_url"`
	Text         string  `json:"burger_of_the_day"`
	Name         *string `json:"burger_name"`
	Description  *string `json:"burger_description"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
