package wiki

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	botderrors "github.com/lepinkainen/botd/internal/errors"
)

const (
	// DefaultOrigin is used to resolve site-relative episode links.
	DefaultOrigin = "https://bobs-burgers.fandom.com"
	// DefaultTableClass marks the tables holding burger rows.
	DefaultTableClass = "BOTD"
	// DefaultSourceURL is the Burger of the Day page.
	DefaultSourceURL = DefaultOrigin + "/wiki/Burger_of_the_Day"
)

// ErrNoRecordsReason is reported when a page yields no records at all.
const ErrNoRecordsReason = "No burger records found. The page layout may have changed."

// Options configures a Parser.
type Options struct {
	// Origin resolves links such as "/wiki/Human_Flesh".
	Origin string
	// TableClass selects the tables to walk.
	TableClass string
	// IncludeExtras keeps the Shorts / Other TV Shows sections.
	IncludeExtras bool
	// LabeledItems enables "<b>Label:</b> <b>Name</b>" handling.
	LabeledItems bool
	// ExtraSections overrides DefaultExtraSections when non-nil.
	ExtraSections []string
	// Denylist overrides the built-in denylist when non-nil.
	Denylist *Denylist
}

// DefaultOptions returns the options used for the live wiki page.
func DefaultOptions() Options {
	return Options{
		Origin:       DefaultOrigin,
		TableClass:   DefaultTableClass,
		LabeledItems: true,
	}
}

// Parser turns a wiki document into records.
type Parser struct {
	opts     Options
	denylist *Denylist
}

// NewParser creates a Parser, filling unset options with defaults.
func NewParser(opts Options) *Parser {
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.TableClass == "" {
		opts.TableClass = DefaultTableClass
	}
	if opts.ExtraSections == nil {
		opts.ExtraSections = DefaultExtraSections
	}
	denylist := opts.Denylist
	if denylist == nil {
		denylist = DefaultDenylist()
	}
	return &Parser{opts: opts, denylist: denylist}
}

// Parse walks headings and tables in document order. An empty result is an
// error: it means the page layout no longer matches.
func (p *Parser) Parse(doc *goquery.Document, source string) ([]Record, error) {
	var records []Record
	sections := newSectionTracker(p.opts.IncludeExtras, p.opts.ExtraSections)

	doc.Find("h2, h3, table").Each(func(_ int, el *goquery.Selection) {
		if !el.Is("table") {
			sections.heading(el)
			return
		}
		if !el.HasClass(p.opts.TableClass) {
			return
		}
		season, ok := sections.current()
		if !ok {
			slog.Debug("Skipping table outside a season section")
			return
		}
		rows := p.ParseTable(el, season)
		slog.Debug("Parsed table", "season", season, "records", len(rows))
		records = append(records, rows...)
	})

	if len(records) == 0 {
		return nil, botderrors.NewLayoutError(source, ErrNoRecordsReason)
	}
	return records, nil
}

// ParseHTML parses raw HTML with the given options.
func ParseHTML(r io.Reader, source string, opts Options) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return NewParser(opts).Parse(doc, source)
}
