// Package profile parses original artifacts into structured candidate
// profiles and persists them.
package profile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/internal/entity"
	"github.com/talentsift/talentsift/internal/extract"
	"github.com/talentsift/talentsift/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Parser turns an artifact file into a CandidateProfile by extracting its
// text and running the entity extractors over it.
type Parser struct {
	extractor *extract.Extractor
}

// NewParser returns a parser using the given text extractor.
func NewParser(extractor *extract.Extractor) *Parser {
	return &Parser{extractor: extractor}
}

// Parse extracts a candidate profile from the artifact at path. asOf closes
// open-ended date ranges ("2020 - present") when estimating experience.
// Returns an error when no text can be extracted.
func (p *Parser) Parse(path string, asOf time.Time) (*models.CandidateProfile, error) {
	rawText, err := p.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("no text could be extracted from %s", path)
	}

	now := time.Now().UTC()
	return &models.CandidateProfile{
		ID:              uuid.New().String(),
		DocumentID:      filepath.Base(path),
		Email:           entity.ExtractEmail(rawText),
		Phone:           entity.ExtractPhone(rawText),
		Skills:          entity.ExtractSkills(rawText),
		Education:       entity.ExtractEducationLines(rawText),
		Experience:      entity.ExtractExperienceLines(rawText),
		YearsExperience: entity.YearsOfExperience(rawText, asOf),
		RawText:         cleanText(rawText),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// cleanText collapses whitespace runs and strips characters that are noise
// for downstream matching, keeping the ones that carry contact or skill
// information (@ . + - ( ) ,).
func cleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '@' || r == '.' || r == '+' || r == '-' || r == '(' || r == ')' || r == ',' || r == ' ':
			b.WriteRune(r)
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
