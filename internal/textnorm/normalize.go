// Package textnorm canonicalizes free text so that scraped episode titles
// and catalog titles can be compared.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{0085}]+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimRe   = regexp.MustCompile(`^-+|-+$`)
)

// asciiFold decomposes to NFKD and drops every non-ASCII rune, which removes
// combining marks along with anything that has no ASCII decomposition.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims the result. Case and punctuation are preserved.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Normalize returns the comparison form of s: ASCII-folded, lowercased,
// "&" spelled out, punctuation runs turned into single spaces.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = asciiFold(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", "and")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return CollapseWhitespace(s)
}

// StripWrappingQuotes removes one pair of surrounding double quotes. Text
// quoted on one side only is returned trimmed but otherwise untouched.
func StripWrappingQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// Slugify builds a URL-safe identifier, e.g. "Poutine on the Ritz Burger"
// becomes "poutine-on-the-ritz-burger".
func Slugify(s string) string {
	s = asciiFold(StripWrappingQuotes(s))
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", "and")
	s = nonAlnumRe.ReplaceAllString(s, "-")
	s = slugTrimRe.ReplaceAllString(s, "")
	if s == "" {
		return "untitled"
	}
	return s
}
