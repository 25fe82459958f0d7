package wiki

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	botderrors "github.com/lepinkainen/botd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><body>
<h2><span class="mw-headline">Overview</span></h2>
<table class="BOTD"><tr><td><b><a href="/wiki/Pilot">Pilot</a></b></td><td>Too Early Burger</td><td></td></tr></table>
<h2><span class="mw-headline" id="Season_1">Season 1</span></h2>
<table class="BOTD wikitable">
<tr><th>Episode</th><th>Burger</th><th>Reference</th></tr>
<tr><td rowspan="3"><b>"<a href="/wiki/Human_Flesh">Human Flesh</a>"</b></td><td>New Bacon-ings (comes with bacon)</td><td>[1]</td></tr>
<tr><td><b>Burger:</b> <b>Bleu is the Warmest Cheese Burger</b></td><td>[2]</td></tr>
<tr><td>Second   Plain Burger</td></tr>
<tr><td><b>"<a href="/wiki/Crawl_Space">Crawl Space</a>"</b></td><td><b>Burger:</b></td><td></td></tr>
<tr><td><b>"<a href="/wiki/Sacred_Cow">Sacred Cow</a>"</b></td><td>Same as Wharf Horse since both episodes take place on the same day.</td><td></td></tr>
<tr></tr>
<tr><td>a</td><td>b</td><td>c</td><td>d</td></tr>
</table>
<h2><span class="mw-headline">Shorts</span></h2>
<table class="BOTD"><tr><td><b><a href="/wiki/Short_Film">Short Film</a></b></td><td>Short Order Burger</td><td></td></tr></table>
<h2>Season 2<span class="mw-editsection">[edit]</span></h2>
<table class="navbox"><tr><td><b><a href="/wiki/Nav">Nav</a></b></td><td>Navbox Burger</td><td></td></tr></table>
<h3><span class="mw-headline">Notes</span></h3>
<table class="BOTD"><tr><td><b><a href="https://example.test/wiki/Food_Truckin">Food Truckin'</a></b></td><td><b>Shoot Out at the OK Corral Burger</b></td><td></td></tr></table>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	records, err := NewParser(DefaultOptions()).Parse(mustDoc(t, samplePage), DefaultSourceURL)
	require.NoError(t, err)
	require.Len(t, records, 4)

	humanFlesh := optional(DefaultOrigin + "/wiki/Human_Flesh")

	assert.Equal(t, Record{
		Season:       1,
		EpisodeTitle: "Human Flesh",
		EpisodeURL:   humanFlesh,
		Text:         "New Bacon-ings (comes with bacon)",
	}, records[0])

	assert.Equal(t, Record{
		Season:       1,
		EpisodeTitle: "Human Flesh",
		EpisodeURL:   humanFlesh,
		Text:         "Bleu is the Warmest Cheese Burger",
		Name:         optional("Bleu is the Warmest Cheese Burger"),
	}, records[1])

	assert.Equal(t, "Second Plain Burger", records[2].Text)
	assert.Equal(t, "Human Flesh", records[2].EpisodeTitle)
	assert.Equal(t, humanFlesh, records[2].EpisodeURL)

	assert.Equal(t, Record{
		Season:       2,
		EpisodeTitle: "Food Truckin'",
		EpisodeURL:   optional("https://example.test/wiki/Food_Truckin"),
		Text:         "Shoot Out at the OK Corral Burger",
		Name:         optional("Shoot Out at the OK Corral Burger"),
	}, records[3])

	for _, r := range records {
		assert.NotEmpty(t, r.Text)
		assert.NotEmpty(t, r.EpisodeTitle)
	}
}

func TestParseIncludeExtras(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeExtras = true

	records, err := NewParser(opts).Parse(mustDoc(t, samplePage), DefaultSourceURL)
	require.NoError(t, err)
	require.Len(t, records, 5)

	// The Shorts heading is ignored so its table stays in season 1.
	assert.Equal(t, 1, records[3].Season)
	assert.Equal(t, "Short Film", records[3].EpisodeTitle)
	assert.Equal(t, "Short Order Burger", records[3].Text)
}

func TestParseNoRecords(t *testing.T) {
	html := `<h2><span class="mw-headline">Season 1</span></h2><table class="other"><tr><td>x</td></tr></table>`

	records, err := NewParser(DefaultOptions()).Parse(mustDoc(t, html), DefaultSourceURL)
	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, botderrors.IsLayoutError(err))
	assert.Contains(t, err.Error(), ErrNoRecordsReason)
}

func TestParseHTMLCustomTableClass(t *testing.T) {
	html := `<h2>Season 3</h2><table class="burgers"><tr><td><b><a href="/wiki/Ear-sy_Rider">Ear-sy Rider</a></b></td><td>Easy Rider Burger</td></tr></table>`

	opts := DefaultOptions()
	opts.TableClass = "burgers"
	opts.Origin = "https://example.test/"

	records, err := ParseHTML(strings.NewReader(html), "test", opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Season)
	assert.Equal(t, optional("https://example.test/wiki/Ear-sy_Rider"), records[0].EpisodeURL)
}

func TestParseSeason(t *testing.T) {
	tests := []struct {
		html   string
		season int
		ok     bool
	}{
		{html: `<h2><span class="mw-headline">Season 12</span></h2>`, season: 12, ok: true},
		{html: `<h2><span class="mw-headline">Season  4 (2013–14)</span></h2>`, season: 4, ok: true},
		{html: `<h2>Season 7<span class="mw-editsection">[edit]</span></h2>`, season: 7, ok: true},
		{html: `<h2><span class="mw-headline">season 3</span></h2>`, ok: false},
		{html: `<h2><span class="mw-headline">Shorts</span></h2>`, ok: false},
	}

	for _, tt := range tests {
		heading := mustDoc(t, tt.html).Find("h2").First()
		season, ok := ParseSeason(heading)
		assert.Equal(t, tt.ok, ok, tt.html)
		assert.Equal(t, tt.season, season, tt.html)
	}
}

func TestHeadingTextDropsEditLinks(t *testing.T) {
	heading := mustDoc(t, `<h2>Other TV Shows <span class="mw-editsection">[<a href="?action=edit">edit</a>]</span></h2>`).Find("h2")
	assert.Equal(t, "Other TV Shows", HeadingText(heading))
}

func TestSectionTracker(t *testing.T) {
	doc := mustDoc(t, `<h2>Season 2</h2><h2>Other TV Series</h2><h3>Trivia</h3><h2>Season 3</h2>`)
	headings := doc.Find("h2, h3")

	tracker := newSectionTracker(false, DefaultExtraSections)
	_, ok := tracker.current()
	assert.False(t, ok)

	tracker.heading(headings.Eq(0))
	season, ok := tracker.current()
	assert.True(t, ok)
	assert.Equal(t, 2, season)

	tracker.heading(headings.Eq(1))
	_, ok = tracker.current()
	assert.False(t, ok, "auxiliary section suppresses tables")

	tracker.heading(headings.Eq(2))
	_, ok = tracker.current()
	assert.False(t, ok, "unrelated headings do not restore a season")

	tracker.heading(headings.Eq(3))
	season, ok = tracker.current()
	assert.True(t, ok)
	assert.Equal(t, 3, season)

	withExtras := newSectionTracker(true, DefaultExtraSections)
	withExtras.heading(headings.Eq(0))
	withExtras.heading(headings.Eq(1))
	season, ok = withExtras.current()
	assert.True(t, ok)
	assert.Equal(t, 2, season)
}
