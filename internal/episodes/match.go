package episodes

import (
	"math"

	"github.com/lepinkainen/botd/internal/textnorm"
)

// FuzzyThreshold is the lowest similarity accepted as a fuzzy match.
const FuzzyThreshold = 0.86

// MatchType reports how a title was resolved.
type MatchType string

const (
	Exact   MatchType = "exact"
	Fuzzy   MatchType = "fuzzy"
	Missing MatchType = "missing"
)

// MatchTypes lists every match type in reporting order.
var MatchTypes = []MatchType{Exact, Fuzzy, Missing}

// Result is the outcome of matching one title. Episode and Score are nil
// when Type is Missing.
type Result struct {
	Episode *Episode
	Type    MatchType
	Score   *float64
}

var missing = Result{Type: Missing}

// Match resolves title within season, first by exact normalized title and
// then by the best similarity ratio at or above FuzzyThreshold.
func (idx *Index) Match(season int, title string) Result {
	s, ok := idx.seasons[season]
	if !ok || title == "" {
		return missing
	}

	key := textnorm.Normalize(title)
	if key == "" {
		return missing
	}

	if eps, ok := s.entries[key]; ok {
		return result(eps[0], Exact, 1.0)
	}

	bestKey := ""
	bestScore := 0.0
	for _, candidate := range s.keys {
		// Strictly greater keeps the first-seen key on ties.
		if score := Ratio(key, candidate); score > bestScore {
			bestKey, bestScore = candidate, score
		}
	}

	if bestKey == "" || bestScore < FuzzyThreshold {
		return missing
	}
	return result(s.entries[bestKey][0], Fuzzy, round3(bestScore))
}

func result(ep Episode, t MatchType, score float64) Result {
	return Result{Episode: &ep, Type: t, Score: &score}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
