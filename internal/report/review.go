package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lepinkainen/botd/internal/episodes"
	"github.com/lepinkainen/botd/internal/pipeline"
)

// NeedsReview returns the records whose titles did not match exactly.
// Records without enrichment are skipped.
func NeedsReview(records []pipeline.EnrichedRecord) []pipeline.EnrichedRecord {
	var out []pipeline.EnrichedRecord
	for _, r := range records {
		if r.Enrichment == nil || r.MatchType == episodes.Exact {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ReviewTable renders fuzzy and missing matches as a table. It returns an
// empty string when there is nothing to show.
func ReviewTable(records []pipeline.EnrichedRecord) string {
	if len(records) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Season", "Wiki title", "Match", "Score", "TVMaze title"})
	for _, r := range records {
		score, name := "", ""
		if r.MatchScore != nil {
			score = r.MatchScore.String()
		}
		if r.TVMazeName != nil {
			name = *r.TVMazeName
		}
		tw.AppendRow(table.Row{r.Season, r.EpisodeTitle, string(r.MatchType), score, name})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
