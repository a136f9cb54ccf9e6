// Package search ranks bookmark records against a free text query.
package search

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
)

// Scores for exact matches. Token matches add TitleHit or DescriptionHit per token.
const (
	ExactTitle       = 8
	ExactDescription = 7
	TitleHit         = 2
	DescriptionHit   = 1
)

// Query is a parsed search query.
type Query struct {
	Raw    string
	tokens []*regexp.Regexp
}

// ParseQuery trims the raw query and compiles each whitespace separated
// token into a case-insensitive literal matcher. The boolean is false
// for an empty query.
func ParseQuery(raw string) (Query, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}, false
	}

	words := strings.Fields(raw)
	q := Query{Raw: raw, tokens: make([]*regexp.Regexp, 0, len(words))}
	for _, w := range words {
		q.tokens = append(q.tokens, regexp.MustCompile("(?i)"+regexp.QuoteMeta(w)))
	}
	return q, true
}

// Score computes the relevance of a record. Zero means no match.
//
// An exact title or description match wins outright. Otherwise every token
// must hit, in order: a title hit is worth more than a description hit, and
// the first token that misses both drops the record.
func (q Query) Score(r bookmarks.Record) int {
	if r.Title == q.Raw {
		return ExactTitle
	}

	desc := r.Description()
	if desc == q.Raw {
		return ExactDescription
	}

	score := 0
	for _, tok := range q.tokens {
		switch {
		case tok.MatchString(r.Title):
			score += TitleHit
		case tok.MatchString(desc):
			score += DescriptionHit
		default:
			return 0
		}
	}
	return score
}

type scored struct {
	record bookmarks.Record
	score  int
}

// Rank returns the records matching rawQuery, best first. Records with
// equal scores keep their input order. An empty query matches nothing.
func Rank(records iter.Seq[bookmarks.Record], rawQuery string) []bookmarks.Record {
	q, ok := ParseQuery(rawQuery)
	if !ok {
		return nil
	}

	var hits []scored
	for r := range records {
		if s := q.Score(r); s > 0 {
			hits = append(hits, scored{record: r, score: s})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return b.score - a.score
	})

	results := make([]bookmarks.Record, len(hits))
	for i, h := range hits {
		results[i] = h.record
	}
	return results
}
