package models

import (
	"path/filepath"
	"strings"
)

// Match classification labels, presentation-facing.
const (
	MatchTypeKeywords     = "Keywords found"
	MatchTypeExactKeyword = "Exact keywords found"
	MatchTypeSemanticOnly = "Semantic match only"
)

// CandidateMatch is an intermediate scoring record for one candidate document
// during a single query execution. It is never persisted.
type CandidateMatch struct {
	DocumentID    string
	Text          string
	Metadata      map[string]string
	RawDistance   float64
	SemanticSim   float64  // clamp(1 - RawDistance, 0, 1)
	SymbolicScore float64  // rule-based evidence (skills, education)
	CombinedScore float64  // mode-dependent blend used for ranking
	MatchedTerms  []string // query terms found in the document text
}

// RankedResult is the presentation record for one ranked candidate.
// The HTTP layer serializes it unchanged.
type RankedResult struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"name"`
	Similarity    float64  `json:"similarity"`
	MatchPercent  float64  `json:"match_percent,omitempty"`
	Preview       string   `json:"preview"`
	Artifact      string   `json:"resume,omitempty"` // original artifact filename, empty when unresolved
	Matched       bool     `json:"found_in_resume"`
	KeywordsFound []string `json:"keywords_found"`
	MatchType     string   `json:"match_type"`
}

// SearchResponse is the full result of one search invocation. Message is a
// corpus-wide flag describing whether any keyword evidence was found.
type SearchResponse struct {
	Results []*RankedResult `json:"results"`
	Message string          `json:"message,omitempty"`
}

// DisplayName derives a human-readable candidate name from a document id:
// the filename stem up to the first underscore.
func DisplayName(documentID string) string {
	stem := strings.TrimSuffix(documentID, filepath.Ext(documentID))
	if i := strings.Index(stem, "_"); i >= 0 {
		stem = stem[:i]
	}
	return strings.TrimSpace(stem)
}
