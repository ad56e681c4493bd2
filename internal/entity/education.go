package entity

import "strings"

// educationVariants maps a requested education level to the lexical variants
// accepted as evidence. Matching is lowercase substring containment; note the
// trailing space in "ms " which keeps it from firing inside arbitrary words.
var educationVariants = map[string][]string{
	"phd":       {"phd", "doctor of philosophy"},
	"masters":   {"masters", "m.s.", "ms ", "m.tech", "mtech", "m.sc", "msc"},
	"bachelors": {"bachelors", "b.e.", "btech", "b.tech", "b.sc", "bsc", "bca", "b.eng"},
}

// EducationScore awards 1.0 for each requested level with at least one
// variant present in text. The first variant hit short-circuits the level, so
// multiple variants of the same degree never double-count. Unknown levels
// contribute nothing.
func EducationScore(text string, levels []string) float64 {
	textLower := strings.ToLower(text)
	score := 0.0
	for _, level := range levels {
		for _, variant := range educationVariants[strings.ToLower(level)] {
			if strings.Contains(textLower, variant) {
				score += 1.0
				break
			}
		}
	}
	return score
}
