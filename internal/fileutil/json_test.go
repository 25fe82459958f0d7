package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/botd/internal/episodes"
	"github.com/lepinkainen/botd/internal/fileutil"
	"github.com/lepinkainen/botd/internal/pipeline"
	"github.com/lepinkainen/botd/internal/wiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scrapedAt = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func exactRecord() pipeline.EnrichedRecord {
	return pipeline.EnrichedRecord{
		Record: wiki.Record{Season: 1, EpisodeTitle: "Human Flesh", Text: "New Bacon-ings"},
		Enrichment: &pipeline.Enrichment{
			TVMazeID:     ptr(1),
			TVMazeName:   ptr("Human Flesh"),
			TVMazeNumber: ptr(1),
			MatchType:    episodes.Exact,
			MatchScore:   ptr(pipeline.Score(1)),
		},
	}
}

func TestWriteJSONFileOutputDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "burger-of-the-day.json")
	doc := pipeline.NewOutput(wiki.DefaultSourceURL, scrapedAt, []pipeline.EnrichedRecord{exactRecord()})

	written, err := fileutil.WriteJSONFile(doc, path, true)
	require.NoError(t, err)
	assert.True(t, written)

	want := `{
  "source_url": "https://bobs-burgers.fandom.com/wiki/Burger_of_the_Day",
  "scraped_at": "2025-02-03T04:05:06.000000+00:00",
  "records": [
    {
      "season": 1,
      "episode_title": "Human Flesh",
      "episode_url": null,
      "burger_of_the_day": "New Bacon-ings",
      "burger_name": null,
      "burger_description": null,
      "tvmaze_episode_id": 1,
      "tvmaze_episode_name": "Human Flesh",
      "tvmaze_episode_number": 1,
      "tvmaze_episode_url": null,
      "tvmaze_match_type": "exact",
      "tvmaze_match_score": 1.0
    }
  ]
}
`
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestWriteJSONFileKeepsNonASCIIAndMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	doc := pipeline.NewOutput(wiki.DefaultSourceURL, scrapedAt, pipeline.Plain([]wiki.Record{{
		Season:       3,
		EpisodeTitle: "Ferry on Fire",
		Text:         "Crème Brûlée <Burger> & Fries",
		Name:         ptr("Crème Brûlée Burger"),
	}}))

	_, err := fileutil.WriteJSONFile(doc, path, true)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"burger_of_the_day": "Crème Brûlée <Burger> & Fries",`)
	assert.Contains(t, string(got), `"burger_name": "Crème Brûlée Burger",`)
	assert.NotContains(t, string(got), `\u00`)
	assert.NotContains(t, string(got), `"tvmaze`, "nil catalog summary and enrichment are omitted")
	assert.Equal(t, byte('\n'), got[len(got)-1])
}

func TestWriteJSONFileKeepsExistingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burger-of-the-day.json")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	written, err := fileutil.WriteJSONFile(pipeline.NewOutput(wiki.DefaultSourceURL, scrapedAt, nil), path, false)
	require.NoError(t, err)
	assert.False(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))
}

func TestWriteJSONFileRejectsUnencodableData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	written, err := fileutil.WriteJSONFile(map[string]any{"records": make(chan int)}, path, true)
	require.Error(t, err)
	assert.False(t, written)
	assert.False(t, fileutil.FileExists(path))
}
