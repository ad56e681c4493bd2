package match

import (
	"regexp"
	"sort"
	"strings"
)

// markOpen and markClose wrap matched terms in previews.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// HighlightTerms wraps every word-boundary occurrence of each term in text
// with highlight markers, case-insensitively. Longer terms are applied first
// so a short term never shadows part of a longer one ("java" inside
// "javascript engineer" when both are requested). A term with zero
// occurrences leaves text unchanged.
func HighlightTerms(text string, terms []string) string {
	for _, term := range uniqueLongestFirst(terms) {
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			continue
		}
		text = pattern.ReplaceAllString(text, markOpen+term+markClose)
	}
	return text
}

// Preview builds the result snippet: the first maxTokens whitespace-delimited
// tokens of the document re-joined, highlighted, with a trailing ellipsis.
func Preview(text string, terms []string, maxTokens int) string {
	tokens := strings.Fields(text)
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}
	return HighlightTerms(strings.Join(tokens, " "), terms) + "..."
}

// uniqueLongestFirst deduplicates terms and orders them longest first
// (lexicographic within a length for determinism).
func uniqueLongestFirst(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
