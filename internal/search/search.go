// Package search filters lists of display labels (cities, airports,
// languages) against free-text queries and locates the matched span so the
// UI can highlight it.
//
// Matching is done on a normalized projection of both strings: lowercase and
// ASCII letters and digits only. "Paris (CDG)", "PARIS CDG" and "paris-cdg"
// all normalize to "pariscdg".
package search

import (
	"strings"
	"unicode"
)

// Option is one selectable entry. Label is what the user sees and what the
// query is matched against; ID is opaque to this package.
type Option struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

// Span is a half-open byte range [Start, End) into an original label.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Match is an Option that passed a filter, with its highlight span.
// Span is nil when the query was empty.
type Match struct {
	Option
	Span *Span `json:"highlight"`
}

// Normalize lowercases s and drops every rune outside [a-z0-9].
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := keep(r); ok {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Matches reports whether the normalized query occurs in the normalized
// label. An empty normalized query matches every label.
func Matches(label, query string) bool {
	return strings.Contains(Normalize(label), Normalize(query))
}

// HighlightSpan finds the first occurrence of the normalized query in the
// normalized label and maps it back to byte offsets in label. The returned
// span starts and ends on runes that survive normalization, so
// Normalize(label[Start:End]) equals the matched text exactly.
func HighlightSpan(label, query string) (Span, bool) {
	nq := Normalize(query)
	if nq == "" {
		return Span{}, false
	}
	at := strings.Index(Normalize(label), nq)
	if at < 0 {
		return Span{}, false
	}
	end := at + len(nq)

	count, start := 0, 0
	for i, r := range label {
		if _, ok := keep(r); !ok {
			continue
		}
		if count == at {
			start = i
		}
		count++
		if count == end {
			return Span{Start: start, End: i + len(string(r))}, true
		}
	}
	return Span{}, false
}

// FilterAndRank returns the labels matching query in input order, at most
// limit of them. With an empty query the first limit labels are returned
// unfiltered. Callers pass a larger limit for browsing than for searching.
func FilterAndRank(labels []string, query string, limit int) []string {
	out := make([]string, 0, min(max(limit, 0), len(labels)))
	if limit <= 0 {
		return out
	}
	nq := Normalize(query)
	for _, l := range labels {
		if len(out) == limit {
			break
		}
		if nq == "" || strings.Contains(Normalize(l), nq) {
			out = append(out, l)
		}
	}
	return out
}

// FilterOptions is FilterAndRank over options, returning each hit with its
// highlight span.
func FilterOptions(opts []Option, query string, limit int) []Match {
	out := make([]Match, 0, min(max(limit, 0), len(opts)))
	if limit <= 0 {
		return out
	}
	nq := Normalize(query)
	for _, o := range opts {
		if len(out) == limit {
			break
		}
		if nq == "" {
			out = append(out, Match{Option: o})
			continue
		}
		if sp, ok := HighlightSpan(o.Label, query); ok {
			out = append(out, Match{Option: o, Span: &sp})
		}
	}
	return out
}

// keep reports whether r survives normalization and returns its ASCII form.
func keep(r rune) (byte, bool) {
	r = unicode.ToLower(r)
	if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
		return byte(r), true
	}
	return 0, false
}
