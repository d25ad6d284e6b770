// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package excerpt cuts a short, highlighted window of page text around the
// first case-insensitive occurrence of a search term.
package excerpt

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// DefaultRadius is the number of characters kept on each side of a match.
const DefaultRadius = 40

// Marker wraps the matched text inside an excerpt. Literal markers already
// present in the page text are not escaped.
const Marker = "*"

// Span locates a match and its context window as byte offsets into the
// original text. 0 <= WindowStart <= Start <= End <= WindowEnd <= len(text).
type Span struct {
	Start       int
	End         int
	WindowStart int
	WindowEnd   int
}

// Excerpt is the highlighted context window for one match.
type Excerpt struct {
	Text string
	Span Span
}

// Extract returns the excerpt around the first occurrence of term in text
// using DefaultRadius. ok is false when term does not occur.
func Extract(text, term string) (Excerpt, bool) {
	return ExtractRadius(text, term, DefaultRadius)
}

// ExtractRadius is Extract with an explicit radius, counted in runes. A
// negative radius is treated as zero.
func ExtractRadius(text, term string, radius int) (Excerpt, bool) {
	start, end, ok := Locate(text, term)
	if !ok {
		return Excerpt{}, false
	}
	if radius < 0 {
		radius = 0
	}

	sp := Span{
		Start:       start,
		End:         end,
		WindowStart: backRunes(text, start, radius),
		WindowEnd:   forwardRunes(text, end, radius),
	}

	return Excerpt{
		Text: text[sp.WindowStart:sp.Start] + Marker + text[sp.Start:sp.End] + Marker + text[sp.End:sp.WindowEnd],
		Span: sp,
	}, true
}

// Locate finds the first case-insensitive occurrence of term in text and
// returns its byte offsets in text. An empty term never matches.
//
// Collation matching also equates ligatures and ignorable code points
// (e.g. "ﬁ" and "fi", or a soft hyphen inside a word). Such spans are
// skipped so that text[start:end] always case-folds to term.
func Locate(text, term string) (start, end int, ok bool) {
	if term == "" || text == "" {
		return 0, 0, false
	}
	m := search.New(language.Und, search.IgnoreCase)
	for offset := 0; offset < len(text); {
		s, e := m.IndexString(text[offset:], term)
		if s < 0 || e < s {
			break
		}
		s, e = s+offset, e+offset
		if strings.EqualFold(text[s:e], term) {
			return s, e, true
		}
		_, size := utf8.DecodeRuneInString(text[s:])
		offset = s + size
	}
	return 0, 0, false
}

// backRunes moves n runes left of offset i, stopping at 0.
func backRunes(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// forwardRunes moves n runes right of offset i, stopping at len(s).
func forwardRunes(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
