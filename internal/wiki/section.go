package wiki

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/lepinkainen/botd/internal/textnorm"
)

var seasonRe = regexp.MustCompile(`Season\s+(\d+)`)

// DefaultExtraSections are the normalized titles of sections that list
// burgers from outside the main series.
var DefaultExtraSections = []string{
	"shorts",
	"other tv shows",
	"other tv show",
	"other tv series",
}

// HeadingText returns the visible title of an h2/h3 heading. MediaWiki wraps
// the title in span.mw-headline; newer skins drop the span, in which case
// the edit-section links are excluded from the text.
func HeadingText(heading *goquery.Selection) string {
	if span := heading.Find("span.mw-headline").First(); span.Length() > 0 {
		return cellText(span)
	}
	clone := heading.Clone()
	clone.Find(".mw-editsection").Remove()
	return cellText(clone)
}

// ParseSeason extracts N from a "Season N" heading.
func ParseSeason(heading *goquery.Selection) (int, bool) {
	m := seasonRe.FindStringSubmatch(HeadingText(heading))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// sectionTracker follows the heading structure of one document walk.
type sectionTracker struct {
	season        int
	active        bool
	includeExtras bool
	extras        map[string]struct{}
}

func newSectionTracker(includeExtras bool, extraTitles []string) *sectionTracker {
	extras := make(map[string]struct{}, len(extraTitles))
	for _, title := range extraTitles {
		extras[textnorm.Normalize(title)] = struct{}{}
	}
	return &sectionTracker{includeExtras: includeExtras, extras: extras}
}

// heading updates the tracker for an h2/h3 element.
func (s *sectionTracker) heading(h *goquery.Selection) {
	if season, ok := ParseSeason(h); ok {
		s.season = season
		s.active = true
		return
	}
	if s.includeExtras {
		return
	}
	if s.isExtra(HeadingText(h)) {
		s.season = 0
		s.active = false
	}
}

func (s *sectionTracker) isExtra(title string) bool {
	if title == "" {
		return false
	}
	_, ok := s.extras[textnorm.Normalize(title)]
	return ok
}

// current returns the season in effect, or false when tables should be
// suppressed.
func (s *sectionTracker) current() (int, bool) {
	return s.season, s.active
}
