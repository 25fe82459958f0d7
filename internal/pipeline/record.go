package pipeline

import (
	"strconv"
	"strings"

	"github.com/lepinkainen/botd/internal/episodes"
	"github.com/lepinkainen/botd/internal/wiki"
)

// Score is a match score. It always renders with a decimal point so 1.0
// stays distinguishable from an episode number.
type Score float64

// String formats the score as 0.971 or 1.0.
func (s Score) String() string {
	out := strconv.FormatFloat(float64(s), 'f', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

// Enrichment is the catalog match attached to a record. Episode fields are
// null when nothing matched.
type Enrichment struct {
	TVMazeID     *int               `json:"tvmaze_episode_id"`
	TVMazeName   *string            `json:"tvmaze_episode_name"`
	TVMazeNumber *int               `json:"tvmaze_episode_number"`
	TVMazeURL    *string            `json:"tvmaze_episode_url"`
	MatchType    episodes.MatchType `json:"tvmaze_match_type"`
	MatchScore   *Score             `json:"tvmaze_match_score"`
}

// EnrichedRecord is a scraped record with an optional match. A nil
// Enrichment leaves the tvmaze_* keys out of the JSON entirely.
type EnrichedRecord struct {
	wiki.Record
	*Enrichment
}

func newEnrichment(res episodes.Result) *Enrichment {
	e := &Enrichment{MatchType: res.Type}
	if ep := res.Episode; ep != nil {
		id := ep.ID
		e.TVMazeID = &id
		e.TVMazeNumber = ep.Number
		if ep.Name != "" {
			name := ep.Name
			e.TVMazeName = &name
		}
		if ep.URL != "" {
			u := ep.URL
			e.TVMazeURL = &u
		}
	}
	if res.Score != nil {
		s := Score(*res.Score)
		e.MatchScore = &s
	}
	return e
}
