// Package match ranks candidate documents against a query by blending
// semantic similarity from the vector index with rule-based symbolic
// evidence, and renders explainable previews for each result.
package match

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/talentsift/talentsift/internal/embedding"
	"github.com/talentsift/talentsift/internal/entity"
	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/textnorm"
	"github.com/talentsift/talentsift/internal/vecindex"
	"go.uber.org/zap"
)

// Blend weights and pipeline bounds. These are part of the scoring contract,
// not tunables: reproducibility of a ranking requires fixed weights.
const (
	rescoreTopK = 10 // candidates fetched for modes that re-score
	generalTopK = 5  // candidates fetched for general search
	resultLimit = 5  // results returned after ranking

	semanticWeight = 0.7
	keywordWeight  = 0.3
	skillBoost     = 0.3
	educationBoost = 0.4

	jdPreviewTokens      = 80
	defaultPreviewTokens = 60
)

// Result messages, corpus-wide flags about keyword evidence.
const (
	msgWeighted     = "Showing top matches with weighted match percentage."
	msgSemanticOnly = "No direct keyword overlaps - showing top semantic matches ranked by relevance."
	msgKeywords     = "Showing top matches for the requested keywords."
	msgNoKeywords   = "No documents found containing the keywords - showing top semantic matches instead."
)

// ArtifactResolver maps a document id to its original artifact filename.
// An empty return means "original unavailable" and is never an error.
type ArtifactResolver interface {
	ResolveOriginal(documentID string) string
}

// Ranker executes the four search modes. All methods are stateless and safe
// for concurrent use; the only blocking calls are the embedding computation
// and the vector index query, both fire-once with no retry.
type Ranker struct {
	embedder embedding.Embedder
	index    vecindex.Index
	resolver ArtifactResolver
	logger   *zap.Logger
}

// NewRanker creates a ranker. resolver and logger may be nil.
func NewRanker(embedder embedding.Embedder, index vecindex.Index, resolver ArtifactResolver, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{embedder: embedder, index: index, resolver: resolver, logger: logger}
}

// SearchJobDescription matches a free-text job description against resumes.
// Each candidate gets a match percentage blending semantic similarity (70%)
// with keyword overlap ratio (30%). An empty query short-circuits to an
// empty result set.
func (r *Ranker) SearchJobDescription(ctx context.Context, q models.JobDescriptionQuery) (*models.SearchResponse, error) {
	jd := strings.TrimSpace(q.Text)
	if jd == "" {
		return &models.SearchResponse{Results: []*models.RankedResult{}}, nil
	}

	candidates, err := r.queryNearest(ctx, jd, rescoreTopK, false)
	if err != nil {
		return nil, err
	}
	queryTerms := textnorm.ExtractTerms(jd)

	results := make([]*models.RankedResult, 0, len(candidates))
	anyKeywords := false
	for _, c := range candidates {
		docLower := strings.ToLower(c.Document)
		found := containedTerms(queryTerms, docLower)
		overlap := 0.0
		if len(queryTerms) > 0 {
			overlap = float64(len(found)) / float64(len(queryTerms))
		}
		sim := clampSimilarity(c.Distance)
		matchPercent := round1((semanticWeight*sim + keywordWeight*overlap) * 100)
		if len(found) > 0 {
			anyKeywords = true
		}

		results = append(results, &models.RankedResult{
			ID:            c.ID,
			DisplayName:   models.DisplayName(c.ID),
			Similarity:    round4(sim),
			MatchPercent:  matchPercent,
			Preview:       Preview(c.Document, found, jdPreviewTokens),
			Artifact:      r.resolveArtifact(c.ID),
			Matched:       len(found) > 0,
			KeywordsFound: found,
			MatchType:     classify(len(found) > 0, models.MatchTypeKeywords),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].MatchPercent > results[j].MatchPercent })
	if len(results) > resultLimit {
		results = results[:resultLimit]
	}

	msg := msgSemanticOnly
	if anyKeywords {
		msg = msgWeighted
	}
	r.logger.Debug("job description search",
		zap.Int("candidates", len(candidates)),
		zap.Int("query_terms", len(queryTerms)),
		zap.Bool("keywords_found", anyKeywords))
	return &models.SearchResponse{Results: results, Message: msg}, nil
}

// SearchSkills matches resumes against required skills and a minimum
// years-of-experience threshold. Candidates are re-scored with
// combined = (1 - distance) + 0.3 * skillScore before ranking.
func (r *Ranker) SearchSkills(ctx context.Context, q models.SkillQuery) (*models.SearchResponse, error) {
	candidates, err := r.queryNearest(ctx, q.SemanticQuery(), rescoreTopK, false)
	if err != nil {
		return nil, err
	}

	rescored := rescore(candidates, func(doc string) float64 {
		return skillBoost * entity.SkillScore(doc, q.Skills, q.MinYears)
	})
	return r.present(rescored, lowercaseAll(q.Skills)), nil
}

// SearchEducation matches resumes against requested education levels.
// Candidates are re-scored with combined = (1 - distance) + 0.4 * educationScore.
func (r *Ranker) SearchEducation(ctx context.Context, q models.EducationQuery) (*models.SearchResponse, error) {
	candidates, err := r.queryNearest(ctx, q.SemanticQuery(), rescoreTopK, false)
	if err != nil {
		return nil, err
	}

	rescored := rescore(candidates, func(doc string) float64 {
		return educationBoost * entity.EducationScore(doc, q.Levels)
	})
	return r.present(rescored, lowercaseAll(q.Levels)), nil
}

// SearchGeneral is a free-text search over the corpus, optionally including
// interview notes. Results keep the vector index's native order; the keyword
// set is every word token of the raw query, unfiltered.
func (r *Ranker) SearchGeneral(ctx context.Context, q models.GeneralQuery) (*models.SearchResponse, error) {
	candidates, err := r.queryNearest(ctx, q.Text, generalTopK, q.IncludeNotes)
	if err != nil {
		return nil, err
	}

	matches := make([]models.CandidateMatch, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, candidateFrom(c, 0))
	}
	return r.present(matches, textnorm.RawTerms(q.Text)), nil
}

// queryNearest embeds text and queries the vector index, restricted to
// resumes unless includeNotes is set.
func (r *Ranker) queryNearest(ctx context.Context, text string, k int, includeNotes bool) ([]vecindex.Result, error) {
	vec, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	var filter vecindex.Filter
	if !includeNotes {
		filter = vecindex.Filter{"type": string(models.DocTypeResume)}
	}
	results, err := r.index.QueryNearest(ctx, vec, k, filter)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	return results, nil
}

// rescore converts raw hits into candidates with a symbolic score added to
// (1 - distance), sorts by the combined score descending (stable, so ties
// keep the index's native order) and truncates to the result limit.
func rescore(candidates []vecindex.Result, symbolic func(doc string) float64) []models.CandidateMatch {
	matches := make([]models.CandidateMatch, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, candidateFrom(c, symbolic(c.Document)))
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].CombinedScore > matches[j].CombinedScore })
	if len(matches) > resultLimit {
		matches = matches[:resultLimit]
	}
	return matches
}

// present renders candidate matches into the shared presentation shape used
// by the skills, education and general modes: previews highlight the query
// terms found in each document, and the classification label is binary.
func (r *Ranker) present(matches []models.CandidateMatch, queryTerms []string) *models.SearchResponse {
	results := make([]*models.RankedResult, 0, len(matches))
	anyFound := false
	for _, m := range matches {
		docLower := strings.ToLower(m.Text)
		found := containedTerms(queryTerms, docLower)
		if len(found) > 0 {
			anyFound = true
		}
		results = append(results, &models.RankedResult{
			ID:            m.DocumentID,
			DisplayName:   models.DisplayName(m.DocumentID),
			Similarity:    round4(m.SemanticSim),
			Preview:       Preview(m.Text, found, defaultPreviewTokens),
			Artifact:      r.resolveArtifact(m.DocumentID),
			Matched:       len(found) > 0,
			KeywordsFound: found,
			MatchType:     classify(len(found) > 0, models.MatchTypeExactKeyword),
		})
	}

	msg := msgNoKeywords
	if anyFound {
		msg = msgKeywords
	}
	return &models.SearchResponse{Results: results, Message: msg}
}

func (r *Ranker) resolveArtifact(documentID string) string {
	if r.resolver == nil {
		return ""
	}
	return r.resolver.ResolveOriginal(documentID)
}

func candidateFrom(c vecindex.Result, symbolic float64) models.CandidateMatch {
	return models.CandidateMatch{
		DocumentID:    c.ID,
		Text:          c.Document,
		Metadata:      c.Metadata,
		RawDistance:   c.Distance,
		SemanticSim:   clampSimilarity(c.Distance),
		SymbolicScore: symbolic,
		CombinedScore: (1 - c.Distance) + symbolic,
	}
}

// clampSimilarity converts a distance to a similarity in [0,1]. Distances
// above 1 (possible for non-cosine metrics) and below 0 clamp rather than
// leak out of range.
func clampSimilarity(distance float64) float64 {
	return math.Max(0, math.Min(1, 1-distance))
}

// containedTerms returns the query terms present as substrings of the
// lowercased document text, preserving query-term order.
func containedTerms(terms []string, docLower string) []string {
	found := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" && strings.Contains(docLower, t) {
			found = append(found, t)
		}
	}
	return found
}

func classify(matched bool, matchedLabel string) string {
	if matched {
		return matchedLabel
	}
	return models.MatchTypeSemanticOnly
}

func lowercaseAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
