package entity

import (
	"reflect"
	"testing"
)

func TestSkillScore(t *testing.T) {
	resume := "Senior engineer with Python and Docker. 6 years of backend work."
	tests := []struct {
		name     string
		skills   []string
		minYears int
		want     float64
	}{
		{"both skills plus years bonus", []string{"python", "docker"}, 5, 2.5},
		{"one skill missing", []string{"python", "kubernetes"}, 5, 1.5},
		{"years threshold unmet", []string{"python", "docker"}, 10, 2.0},
		{"zero threshold always bonuses", []string{"python"}, 0, 1.5},
		{"no skills match", []string{"cobol"}, 10, 0.0},
		{"skill input case-insensitive", []string{"PYTHON"}, 0, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkillScore(resume, tt.skills, tt.minYears); got != tt.want {
				t.Errorf("SkillScore(skills=%v, minYears=%d) = %v, want %v", tt.skills, tt.minYears, got, tt.want)
			}
		})
	}
}

func TestSkillScore_substringContainment(t *testing.T) {
	// Scoring is plain containment: "java" counts inside "javascript".
	// The tradeoff is accepted for ranking; profile extraction is stricter.
	got := SkillScore("JavaScript developer", []string{"java"}, 0)
	if got != 1.5 {
		t.Errorf("got %v, want 1.5", got)
	}
}

func TestSkillScore_monotonicInMatches(t *testing.T) {
	text := "Python, Go and SQL. 4 years in data."
	one := SkillScore(text, []string{"python"}, 0)
	two := SkillScore(text, []string{"python", "sql"}, 0)
	if two <= one {
		t.Errorf("adding a matched skill should raise the score: one=%v two=%v", one, two)
	}
}

func TestExtractSkills(t *testing.T) {
	text := "Experienced in Python, React and PostgreSQL. Shipped machine learning pipelines."
	got := ExtractSkills(text)
	want := []string{"Python", "React", "Postgresql", "Machine Learning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSkills = %v, want %v", got, want)
	}
}

func TestExtractSkills_wordBoundary(t *testing.T) {
	// Unlike SkillScore, extraction is word-boundary matched: "javascript"
	// must not surface "java".
	got := ExtractSkills("JavaScript developer")
	want := []string{"Javascript"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSkills = %v, want %v", got, want)
	}
}

func TestExtractSkills_none(t *testing.T) {
	if got := ExtractSkills("florist and baker"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
