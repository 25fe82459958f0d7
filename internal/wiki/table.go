package wiki

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
)

// episodeState is the episode carried across rows of one table. Rows that
// continue an episode omit the episode cell (rowspan).
type episodeState struct {
	title string
	url   *string
}

// ParseTable walks the rows of one BOTD table and returns a record for
// every row with a burger and a known episode.
func (p *Parser) ParseTable(table *goquery.Selection, season int) []Record {
	var (
		records []Record
		state   episodeState
	)

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		itemCell := p.locateItemCell(cells, &state)
		if itemCell == nil || state.title == "" {
			return
		}

		item := ExtractItem(itemCell, p.opts.LabeledItems)
		if item.Kind == NoItem {
			return
		}
		if p.denylist.Contains(item.Text) {
			slog.Debug("Skipping denylisted burger text", "season", season, "episode", state.title)
			return
		}

		records = append(records, Record{
			Season:       season,
			EpisodeTitle: state.title,
			EpisodeURL:   state.url,
			Text:         item.Text,
			Name:         optional(item.Name),
			Description:  optional(item.Description),
		})
	})

	return records
}

// locateItemCell applies the column-count rules to one row, updating the
// carried episode when the row starts a new one.
func (p *Parser) locateItemCell(cells *goquery.Selection, state *episodeState) *goquery.Selection {
	switch cells.Length() {
	case 3:
		if first := cells.Eq(0); IsEpisodeCell(first) {
			state.title, state.url = ExtractEpisode(first, p.opts.Origin)
		}
		return cells.Eq(1)
	case 2:
		first := cells.Eq(0)
		if IsEpisodeCell(first) {
			state.title, state.url = ExtractEpisode(first, p.opts.Origin)
			return cells.Eq(1)
		}
		return first
	case 1:
		return cells.Eq(0)
	default:
		return nil
	}
}
