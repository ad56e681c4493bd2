package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		documentID string
		want       string
	}{
		{"jane_doe_cleaned.txt", "jane"},
		{"smith.txt", "smith"},
		{"Ada Lovelace.txt", "Ada Lovelace"},
		{"_leading.txt", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.documentID); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.documentID, got, tt.want)
		}
	}
}

func TestSkillQuerySemanticQuery(t *testing.T) {
	q := SkillQuery{Skills: []string{"python", "docker"}}
	if got := q.SemanticQuery(); got != "python, docker" {
		t.Errorf("got %q", got)
	}
	q.MinYears = 5
	if got := q.SemanticQuery(); got != "python, docker, 5 years" {
		t.Errorf("got %q", got)
	}
}

func TestEducationQuerySemanticQuery(t *testing.T) {
	q := EducationQuery{Levels: []string{"phd", "masters"}}
	if got := q.SemanticQuery(); got != "candidates with phd, masters" {
		t.Errorf("got %q", got)
	}
}
