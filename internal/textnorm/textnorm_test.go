package textnorm

import (
	"reflect"
	"testing"
)

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and sorts",
			input: "Python Kubernetes AWS",
			want:  []string{"aws", "kubernetes", "python"},
		},
		{
			name:  "drops stopwords",
			input: "experience with the Python team",
			want:  []string{"python"},
		},
		{
			name:  "keeps special-character tokens",
			input: "knows c++ and node.js plus ci-cd",
			want:  []string{"ci-cd", "knows", "node.js", "plus"},
		},
		{
			name:  "deduplicates",
			input: "python Python PYTHON",
			want:  []string{"python"},
		},
		{
			name:  "drops short tokens",
			input: "go is ok",
			want:  []string{},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTerms(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTerms(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractTerms_numericLeadDropped(t *testing.T) {
	// Terms must start with a letter; bare numbers are not keywords.
	got := ExtractTerms("5 years of Python")
	want := []string{"python", "years"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRawTerms(t *testing.T) {
	got := RawTerms("Machine Learning 101")
	want := []string{"machine", "learning", "101"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RawTerms = %v, want %v", got, want)
	}
}

func TestRawTerms_keepsStopwordsAndOrder(t *testing.T) {
	got := RawTerms("the Big Data")
	want := []string{"the", "big", "data"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RawTerms = %v, want %v", got, want)
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("The") {
		t.Error("The should be a stopword")
	}
	if IsStopword("python") {
		t.Error("python should not be a stopword")
	}
}
