// Package textnorm normalizes free text into keyword terms for matching.
package textnorm

import (
	"regexp"
	"sort"
	"strings"
)

// termPattern matches alphabetic-leading words of length >= 3, allowing
// digits, '+', '#', '.' and '-' inside, so tokens like "node.js" and
// "ci-cd" survive tokenization.
var termPattern = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z0-9+#.\-]{2,}\b`)

// wordPattern matches any word token, used for general (unfiltered) queries.
var wordPattern = regexp.MustCompile(`\b\w+\b`)

// stopwords are articles, prepositions and generic job-posting filler that
// carry no matching signal.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "for": {}, "a": {}, "an": {}, "in": {},
	"on": {}, "of": {}, "to": {}, "is": {}, "at": {}, "as": {}, "by": {},
	"or": {}, "be": {}, "are": {}, "from": {}, "this": {}, "that": {},
	"it": {}, "we": {}, "you": {}, "our": {}, "their": {}, "your": {},
	"will": {}, "can": {}, "may": {}, "must": {}, "within": {}, "using": {},
	"use": {}, "used": {}, "via": {}, "into": {}, "out": {}, "up": {},
	"down": {}, "over": {}, "under": {}, "per": {}, "new": {}, "old": {},
	"etc": {}, "i": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
	"ability": {}, "strong": {}, "excellent": {}, "good": {}, "great": {},
	"well": {}, "high": {}, "low": {}, "work": {}, "role": {}, "job": {},
	"position": {}, "team": {}, "experience": {}, "experiences": {},
	"background": {}, "candidate": {}, "candidates": {},
}

// ExtractTerms returns the lowercased keyword terms of text with stopwords
// removed, deduplicated and sorted. Returns an empty slice for empty or
// whitespace-only input; never fails.
func ExtractTerms(text string) []string {
	raw := termPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.ToLower(t)
		if _, stop := stopwords[t]; stop {
			continue
		}
		seen[t] = struct{}{}
	}
	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// RawTerms returns every lowercased word token of text, without stopword
// filtering or a length floor. Used by general search where the caller wants
// all tokens as highlight candidates.
func RawTerms(text string) []string {
	raw := wordPattern.FindAllString(text, -1)
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		terms = append(terms, strings.ToLower(t))
	}
	return terms
}

// IsStopword reports whether the lowercased term is in the stopword set.
func IsStopword(term string) bool {
	_, ok := stopwords[strings.ToLower(term)]
	return ok
}
