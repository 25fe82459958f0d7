package wiki

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCell(t *testing.T, html string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tr>" + html + "</tr></table>"))
	require.NoError(t, err)
	cell := doc.Find("td").First()
	require.Equal(t, 1, cell.Length(), "fixture must contain a td")
	return cell
}

func TestIsEpisodeCell(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{name: "bold link", html: `<td><b>"<a href="/wiki/Human_Flesh">Human Flesh</a>"</b></td>`, want: true},
		{name: "link without bold", html: `<td><a href="/wiki/Human_Flesh">Human Flesh</a></td>`, want: false},
		{name: "bold without link", html: `<td><b>Burger:</b> Something</td>`, want: false},
		{name: "bold anchor without href", html: `<td><b><a name="x">Human Flesh</a></b></td>`, want: false},
		{name: "second bold has link", html: `<td><b>Note</b> <b><a href="/wiki/Crawl_Space">Crawl Space</a></b></td>`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEpisodeCell(parseCell(t, tt.html)))
		})
	}
}

func TestExtractEpisode(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
		wantURL   *string
	}{
		{
			name:      "quoted relative link",
			html:      `<td><b>"<a href="/wiki/Human_Flesh">Human Flesh</a>"</b></td>`,
			wantTitle: "Human Flesh",
			wantURL:   optional(DefaultOrigin + "/wiki/Human_Flesh"),
		},
		{
			name:      "absolute link kept verbatim",
			html:      `<td><b><a href="https://example.test/wiki/Sacred_Cow">Sacred Cow</a></b></td>`,
			wantTitle: "Sacred Cow",
			wantURL:   optional("https://example.test/wiki/Sacred_Cow"),
		},
		{
			name:      "protocol relative link",
			html:      `<td><b><a href="//example.test/wiki/Sacred_Cow">Sacred Cow</a></b></td>`,
			wantTitle: "Sacred Cow",
			wantURL:   optional("https://example.test/wiki/Sacred_Cow"),
		},
		{
			name:      "asymmetric quotes untouched",
			html:      `<td><b>"<a href="/wiki/Sheesh">Sheesh! Cab, Bob?</a></b></td>`,
			wantTitle: `" Sheesh! Cab, Bob?`,
			wantURL:   optional(DefaultOrigin + "/wiki/Sheesh"),
		},
		{
			name:      "empty href",
			html:      `<td><b><a href="  ">Bob Day Afternoon</a></b></td>`,
			wantTitle: "Bob Day Afternoon",
		},
		{
			name:      "no link",
			html:      `<td><b>Bob Day Afternoon</b></td>`,
			wantTitle: "Bob Day Afternoon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, url := ExtractEpisode(parseCell(t, tt.html), DefaultOrigin)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestExtractItem(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		labeled bool
		want    Item
	}{
		{
			name:    "empty cell",
			html:    "<td>  \n </td>",
			labeled: true,
			want:    Item{Kind: NoItem},
		},
		{
			name:    "plain text",
			html:    "<td>New Bacon-ings   (comes with bacon)</td>",
			labeled: true,
			want:    Item{Kind: PlainText, Text: "New Bacon-ings (comes with bacon)"},
		},
		{
			name:    "label only",
			html:    "<td><b>Burger:</b></td>",
			labeled: true,
			want:    Item{Kind: NoItem},
		},
		{
			name:    "label only with simple variant",
			html:    "<td> <b>Burger:</b> </td>",
			labeled: false,
			want:    Item{Kind: NoItem},
		},
		{
			name:    "named with parenthetical note",
			html:    "<td><b>The Child Molester</b> (comes with candy)</td>",
			labeled: true,
			want: Item{
				Kind:        NamedItem,
				Text:        "The Child Molester (comes with candy)",
				Name:        "The Child Molester",
				Description: "comes with candy",
			},
		},
		{
			name:    "named without description",
			html:    "<td><b>Bleu is the Warmest Cheese Burger</b></td>",
			labeled: true,
			want: Item{
				Kind: NamedItem,
				Text: "Bleu is the Warmest Cheese Burger",
				Name: "Bleu is the Warmest Cheese Burger",
			},
		},
		{
			name:    "named with text before the name",
			html:    "<td>Served as <b>The Sound and the Curry Burger</b></td>",
			labeled: true,
			want: Item{
				Kind:        NamedItem,
				Text:        "Served as The Sound and the Curry Burger",
				Name:        "The Sound and the Curry Burger",
				Description: "Served as",
			},
		},
		{
			name:    "description with two parentheticals keeps parens",
			html:    "<td><b>Beets Me Burger</b> (with beets) and (goat cheese)</td>",
			labeled: true,
			want: Item{
				Kind:        NamedItem,
				Text:        "Beets Me Burger (with beets) and (goat cheese)",
				Name:        "Beets Me Burger",
				Description: "(with beets) and (goat cheese)",
			},
		},
		{
			name:    "labeled name with note",
			html:    "<td><b>Burger:</b> <b>Poutine on the Ritz Burger</b> (comes with fries)</td>",
			labeled: true,
			want: Item{
				Kind:        LabeledNamedItem,
				Text:        "Poutine on the Ritz Burger (comes with fries)",
				Name:        "Poutine on the Ritz Burger",
				Description: "comes with fries",
			},
		},
		{
			name:    "labeled name without note",
			html:    "<td><b>Burger:</b> <b>Poutine on the Ritz Burger</b></td>",
			labeled: true,
			want: Item{
				Kind: LabeledNamedItem,
				Text: "Poutine on the Ritz Burger",
				Name: "Poutine on the Ritz Burger",
			},
		},
		{
			name:    "labeled skips empty bold",
			html:    "<td><b>Burger:</b> <b> </b> <b>Eggers Can't Be Cheesers Burger</b></td>",
			labeled: true,
			want: Item{
				Kind: LabeledNamedItem,
				Text: "Eggers Can't Be Cheesers Burger",
				Name: "Eggers Can't Be Cheesers Burger",
			},
		},
		{
			name:    "label handling disabled",
			html:    "<td><b>Burger:</b> <b>Poutine on the Ritz Burger</b></td>",
			labeled: false,
			want: Item{
				Kind:        NamedItem,
				Text:        "Burger: Poutine on the Ritz Burger",
				Name:        "Burger:",
				Description: "Poutine on the Ritz Burger",
			},
		},
		{
			name:    "label with only empty candidates falls back to text",
			html:    "<td><b>Burger:</b> <b></b> Mushroom Burger</td>",
			labeled: true,
			want:    Item{Kind: PlainText, Text: "Burger: Mushroom Burger"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractItem(parseCell(t, tt.html), tt.labeled))
		})
	}
}

func TestUnwrapParens(t *testing.T) {
	assert.Equal(t, "comes with fries", unwrapParens("(comes with fries)"))
	assert.Equal(t, "nested (inner) note", unwrapParens("( nested (inner) note )"))
	assert.Equal(t, "(a) and (b)", unwrapParens("(a) and (b)"))
	assert.Equal(t, "", unwrapParens("()"))
	assert.Equal(t, "(", unwrapParens("("))
	assert.Equal(t, "plain", unwrapParens("plain"))
}

func TestDropFirst(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, dropFirst([]string{"a", "b", "a"}, "a"))
	assert.Equal(t, []string{"a", "b"}, dropFirst([]string{"a", "b"}, "c"))
	assert.Empty(t, dropFirst(nil, "a"))
}

func TestItemKindString(t *testing.T) {
	assert.Equal(t, "none", NoItem.String())
	assert.Equal(t, "plain", PlainText.String())
	assert.Equal(t, "named", NamedItem.String())
	assert.Equal(t, "labeled", LabeledNamedItem.String())
}
