package models

import (
	"fmt"
	"strings"
)

// JobDescriptionQuery matches a free-text job description against resumes.
type JobDescriptionQuery struct {
	Text string `json:"jd"`
}

// SkillQuery matches resumes against a required skill set and a minimum
// years-of-experience threshold. MinYears of zero means no threshold.
type SkillQuery struct {
	Skills   []string `json:"skills"`
	MinYears int      `json:"min_years"`
}

// SemanticQuery synthesizes the query string sent to the embedding model:
// the comma-joined skills, with an "N years" suffix when a threshold is set.
func (q *SkillQuery) SemanticQuery() string {
	s := strings.Join(q.Skills, ", ")
	if q.MinYears > 0 {
		s += fmt.Sprintf(", %d years", q.MinYears)
	}
	return s
}

// EducationQuery matches resumes against requested education levels
// (phd, masters, bachelors).
type EducationQuery struct {
	Levels []string `json:"levels"`
}

// SemanticQuery synthesizes the query string sent to the embedding model.
func (q *EducationQuery) SemanticQuery() string {
	return "candidates with " + strings.Join(q.Levels, ", ")
}

// GeneralQuery is a free-text search over the whole corpus, optionally
// including interview notes.
type GeneralQuery struct {
	Text         string `json:"q"`
	IncludeNotes bool   `json:"include_notes"`
}
