// Package entity extracts symbolic signals (years of experience, education
// levels, skills) from raw document text. All extractors are stateless pure
// functions over an immutable text value; malformed tokens are skipped, never
// fatal.
package entity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// yearsPattern matches mentions like "5 years", "3+ yrs", "10 year".
var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years|yrs|year)\b`)

// explicitYearsPatterns match stronger phrasings where the number is tied to
// experience ("7 years of experience", "experience: 4 years", "6 years in").
var explicitYearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)experience:\s*(\d+)\+?\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:in|as|with)`),
}

// dateRangePattern matches ranges like "2018-2023", "2020 - present".
var dateRangePattern = regexp.MustCompile(`(?i)(20\d{2})\s*[-–]\s*(?:(20\d{2})|present|current)`)

const (
	explicitYearsCap  = 50 // sanity bound on a single explicit mention
	dateRangeYearsCap = 30 // bound on summed date ranges
)

// ExtractYears returns the maximum number of years mentioned in text as
// "<n> years/yrs/year". Unparsable matches are skipped. Returns 0 when no
// mention is found.
func ExtractYears(text string) int {
	years := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > years {
			years = n
		}
	}
	return years
}

// YearsOfExperience estimates total professional experience from text.
// Explicit mentions tied to experience phrasing win; when none are found the
// durations of date ranges ("2018-2023", "2020 - present") are summed, with
// open-ended ranges closed at asOf.
func YearsOfExperience(text string, asOf time.Time) int {
	maxYears := 0
	for _, p := range explicitYearsPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > maxYears && n < explicitYearsCap {
				maxYears = n
			}
		}
	}
	if maxYears > 0 {
		return maxYears
	}

	currentYear := asOf.Year()
	total := 0
	for _, m := range dateRangePattern.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := currentYear
		if m[2] != "" {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		if end > start {
			total += end - start
		}
	}
	if total > dateRangeYearsCap {
		total = dateRangeYearsCap
	}
	return total
}
