package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lepinkainen/botd/internal/textnorm"
)

// ItemKind tags how an item cell was segmented.
type ItemKind int

const (
	// NoItem means the row carries no burger and must be skipped.
	NoItem ItemKind = iota
	// PlainText is a cell without bold markup.
	PlainText
	// NamedItem is a cell whose bold span names the burger.
	NamedItem
	// LabeledNamedItem is a cell like "<b>Burger:</b> <b>Name</b> (note)".
	LabeledNamedItem
)

func (k ItemKind) String() string {
	switch k {
	case PlainText:
		return "plain"
	case NamedItem:
		return "named"
	case LabeledNamedItem:
		return "labeled"
	default:
		return "none"
	}
}

// Item is the segmented content of an item cell.
type Item struct {
	Kind        ItemKind
	Text        string
	Name        string
	Description string
}

// textFragments returns the cell's text nodes in document order, each
// whitespace-collapsed, with empty nodes dropped.
func textFragments(sel *goquery.Selection) []string {
	var parts []string
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			if text := textnorm.CollapseWhitespace(child.Text()); text != "" {
				parts = append(parts, text)
			}
		case "#comment":
		default:
			parts = append(parts, textFragments(child)...)
		}
	})
	return parts
}

func cellText(sel *goquery.Selection) string {
	return textnorm.CollapseWhitespace(strings.Join(textFragments(sel), " "))
}

// IsEpisodeCell reports whether the cell holds a bold span wrapping a link,
// which is how the page marks the episode column.
func IsEpisodeCell(cell *goquery.Selection) bool {
	return cell.Find("b a[href]").Length() > 0
}

// ExtractEpisode returns the episode title and the absolute URL of its wiki
// page. Links starting with "/" are resolved against origin.
func ExtractEpisode(cell *goquery.Selection, origin string) (string, *string) {
	title := textnorm.StripWrappingQuotes(cellText(cell))

	link := cell.Find("a[href]").First()
	if link.Length() == 0 {
		return title, nil
	}
	href := strings.TrimSpace(link.AttrOr("href", ""))
	switch {
	case href == "":
		return title, nil
	case strings.HasPrefix(href, "//"):
		scheme := "https:"
		if i := strings.Index(origin, "//"); i > 0 {
			scheme = origin[:i]
		}
		return title, optional(scheme + href)
	case strings.HasPrefix(href, "/"):
		return title, optional(strings.TrimSuffix(origin, "/") + href)
	default:
		return title, optional(href)
	}
}

// ExtractItem segments an item cell. When labeled is false, a leading
// "Label:" bold span is treated like any other name.
func ExtractItem(cell *goquery.Selection, labeled bool) Item {
	fullText := cellText(cell)
	if fullText == "" {
		return Item{Kind: NoItem}
	}

	bolds := cell.Find("b")
	if bolds.Length() == 0 {
		return Item{Kind: PlainText, Text: fullText}
	}

	boldTexts := bolds.Map(func(_ int, b *goquery.Selection) string {
		return cellText(b)
	})
	first := boldTexts[0]

	if len(boldTexts) == 1 && strings.HasSuffix(first, ":") && fullText == first {
		return Item{Kind: NoItem}
	}

	fragments := textFragments(cell)

	if labeled && len(boldTexts) > 1 && strings.HasSuffix(first, ":") {
		return labeledItem(fullText, first, boldTexts[1:], fragments)
	}
	return namedItem(fullText, first, fragments)
}

func namedItem(fullText, name string, fragments []string) Item {
	if name == "" {
		return Item{Kind: PlainText, Text: fullText}
	}

	rest := dropFirst(fragments, name)
	return Item{
		Kind:        NamedItem,
		Text:        fullText,
		Name:        name,
		Description: unwrapParens(strings.Join(rest, " ")),
	}
}

func labeledItem(fullText, label string, candidates, fragments []string) Item {
	var name string
	for _, c := range candidates {
		if c != "" {
			name = c
			break
		}
	}
	if name == "" {
		return Item{Kind: PlainText, Text: fullText}
	}

	rest := dropFirst(dropFirst(fragments, label), name)
	description := unwrapParens(strings.Join(rest, " "))

	text := name
	if description != "" {
		text = name + " (" + description + ")"
	}
	return Item{
		Kind:        LabeledNamedItem,
		Text:        text,
		Name:        name,
		Description: description,
	}
}

// dropFirst returns parts without the first element equal to target.
func dropFirst(parts []string, target string) []string {
	out := make([]string, 0, len(parts))
	dropped := false
	for _, p := range parts {
		if !dropped && p == target {
			dropped = true
			continue
		}
		out = append(out, p)
	}
	return out
}

// unwrapParens strips one pair of parentheses enclosing the whole string.
// "(a) and (b)" is left alone because its first paren closes early.
func unwrapParens(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}
