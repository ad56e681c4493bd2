package entity

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const yearsBonus = 0.5

// SkillScore awards 1.0 for each required skill whose lowercase form appears
// as a substring of the lowercased text, plus a flat 0.5 bonus when the
// document's extracted years of experience meet minYears (a threshold of 0
// is always met, so the absence of a years stipulation never penalizes).
//
// Containment is deliberately not tokenized, matching the ranking contract:
// "java" scores inside "javascript". The profile parser uses word-boundary
// matching instead; see ExtractSkills.
func SkillScore(text string, requiredSkills []string, minYears int) float64 {
	textLower := strings.ToLower(text)
	score := 0.0
	for _, skill := range requiredSkills {
		if strings.Contains(textLower, strings.ToLower(skill)) {
			score += 1.0
		}
	}
	if ExtractYears(text) >= minYears {
		score += yearsBonus
	}
	return score
}

// SkillVocabulary is the controlled vocabulary for profile skill extraction.
var SkillVocabulary = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php", "swift", "kotlin",
	"go", "rust", "scala", "r", "matlab", "perl", "shell", "bash", "powershell",

	// Web
	"html", "css", "react", "angular", "vue", "node.js", "express", "django", "flask",
	"spring", "asp.net", "jquery", "bootstrap", "tailwind", "sass", "webpack", "vite",

	// Databases
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
	"oracle", "sqlite", "dynamodb", "firebase", "supabase",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "ci/cd", "terraform",
	"ansible", "git", "github", "gitlab", "bitbucket", "linux", "nginx", "apache",

	// Data science and ML
	"machine learning", "deep learning", "tensorflow", "pytorch", "keras", "scikit-learn",
	"pandas", "numpy", "data analysis", "data science", "nlp", "computer vision", "ai",

	// Mobile
	"ios", "android", "react native", "flutter", "xamarin", "objective-c",

	// Other
	"rest api", "graphql", "microservices", "agile", "scrum", "jira", "confluence",
	"testing", "unit testing", "integration testing", "selenium", "jest", "pytest",
}

// vocabularyPatterns holds a word-boundary matcher per vocabulary skill,
// compiled once.
var vocabularyPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(SkillVocabulary))
	for i, skill := range SkillVocabulary {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}()

var titleCaser = cases.Title(language.English)

// ExtractSkills returns the vocabulary skills present in text, word-boundary
// matched to avoid partial hits, title-cased, in vocabulary order.
func ExtractSkills(text string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for i, skill := range SkillVocabulary {
		if vocabularyPatterns[i].MatchString(textLower) {
			found = append(found, titleCaser.String(skill))
		}
	}
	return found
}
