package pipeline

import (
	"fmt"
	"strconv"

	"github.com/lepinkainen/botd/internal/cmdutil"
	"github.com/lepinkainen/botd/internal/csvutil"
	"github.com/lepinkainen/botd/internal/fileutil"
	"github.com/lepinkainen/botd/internal/textnorm"
)

// CSVHeader lists the CSV columns in output order.
var CSVHeader = []string{
	"season",
	"episode_title",
	"episode_url",
	"burger_of_the_day",
	"burger_name",
	"burger_description",
	"tvmaze_episode_id",
	"tvmaze_episode_name",
	"tvmaze_episode_number",
	"tvmaze_episode_url",
	"tvmaze_match_type",
	"tvmaze_match_score",
}

// RecordsTable is the datastore table for exported records.
const RecordsTable = "botd_records"

// RecordsSchema creates RecordsTable.
const RecordsSchema = `CREATE TABLE IF NOT EXISTS botd_records (
	id INTEGER PRIMARY KEY,
	season INTEGER NOT NULL,
	episode_code TEXT,
	episode_title TEXT NOT NULL,
	episode_url TEXT,
	burger_of_the_day TEXT NOT NULL,
	burger_name TEXT,
	burger_slug TEXT NOT NULL,
	burger_description TEXT,
	tvmaze_episode_id INTEGER,
	tvmaze_episode_name TEXT,
	tvmaze_episode_number INTEGER,
	tvmaze_episode_url TEXT,
	tvmaze_match_type TEXT,
	tvmaze_match_score REAL
)`

// CSVRow renders r in CSVHeader order. Absent values become empty cells.
func CSVRow(r EnrichedRecord) []string {
	row := []string{
		strconv.Itoa(r.Season),
		r.EpisodeTitle,
		str(r.EpisodeURL),
		r.Text,
		str(r.Name),
		str(r.Description),
		"", "", "", "", "", "",
	}
	if e := r.Enrichment; e != nil {
		row[6] = num(e.TVMazeID)
		row[7] = str(e.TVMazeName)
		row[8] = num(e.TVMazeNumber)
		row[9] = str(e.TVMazeURL)
		row[10] = string(e.MatchType)
		if e.MatchScore != nil {
			row[11] = e.MatchScore.String()
		}
	}
	return row
}

// EpisodeCode formats the season and matched episode number as S01E05.
// It is empty without a matched number.
func (r EnrichedRecord) EpisodeCode() string {
	if r.Enrichment == nil || r.TVMazeNumber == nil {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", r.Season, *r.TVMazeNumber)
}

// BurgerSlug identifies the burger, preferring its name over the full text.
func (r EnrichedRecord) BurgerSlug() string {
	if r.Name != nil {
		return textnorm.Slugify(*r.Name)
	}
	return textnorm.Slugify(r.Text)
}

// DatastoreRow maps the record at position i to a RecordsTable row.
func DatastoreRow(i int, r EnrichedRecord) map[string]any {
	row := cmdutil.StructToMap(r, cmdutil.StructToMapOptions{UseJSONTags: true})
	for _, col := range CSVHeader[6:] {
		if _, ok := row[col]; !ok {
			row[col] = nil
		}
	}
	row["id"] = i + 1
	row["burger_slug"] = r.BurgerSlug()
	row["episode_code"] = nil
	if code := r.EpisodeCode(); code != "" {
		row["episode_code"] = code
	}
	return row
}

// WriteJSON writes v to path. It reports false when path already existed
// and overwrite is off.
func WriteJSON(v any, path string, overwrite bool) (bool, error) {
	return fileutil.WriteJSONFile(v, path, overwrite)
}

// WriteCSV writes records to path with CRLF row endings. It reports false
// when path already existed and overwrite is off.
func WriteCSV(records []EnrichedRecord, path string, overwrite bool) (bool, error) {
	return csvutil.WriteCSV(path, CSVHeader, records, CSVRow, csvutil.WriterOptions{
		UseCRLF:   true,
		Overwrite: overwrite,
	})
}

// WriteDatastore exports records to the configured datastore, if any.
func WriteDatastore(records []EnrichedRecord) error {
	type indexed struct {
		i int
		r EnrichedRecord
	}
	rows := make([]indexed, len(records))
	for i, r := range records {
		rows[i] = indexed{i, r}
	}
	return cmdutil.WriteToDatastore(rows, RecordsSchema, RecordsTable, "burger records", func(x indexed) map[string]any {
		return DatastoreRow(x.i, x.r)
	})
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
