package entity

import (
	"regexp"
	"strings"
)

// degreeMentions is the loose degree vocabulary used when pulling whole
// education lines out of a resume (broader than the scoring variants).
var degreeMentions = []string{
	"bachelor", "master", "phd", "doctorate", "mba", "bs", "ba", "ms", "ma",
	"b.tech", "m.tech", "b.e", "m.e", "bsc", "msc", "associate", "diploma",
}

var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Senior|Junior|Lead|Staff)?\s*(Developer|Engineer|Manager|Designer|Analyst|Scientist|Consultant|Architect)`),
	regexp.MustCompile(`(?i)(Software|Data|Systems|Network|Database|Frontend|Backend|Full Stack|DevOps)`),
}

var experienceHeadings = []string{"experience", "employment", "work history", "professional"}

const (
	maxEducationLines  = 3
	maxExperienceLines = 5
)

// ExtractEducationLines returns up to three lines of text mentioning a
// degree, in document order.
func ExtractEducationLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, degree := range degreeMentions {
			if strings.Contains(lower, degree) {
				lines = append(lines, strings.TrimSpace(line))
				break
			}
		}
		if len(lines) == maxEducationLines {
			break
		}
	}
	return lines
}

// ExtractExperienceLines returns up to five lines that follow an experience
// section heading and look like job entries.
func ExtractExperienceLines(text string) []string {
	var entries []string
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		heading := false
		for _, h := range experienceHeadings {
			if strings.Contains(lower, h) {
				heading = true
				break
			}
		}
		if !heading {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+10; j++ {
			entry := strings.TrimSpace(lines[j])
			if len(entry) <= 10 {
				continue
			}
			for _, p := range jobTitlePatterns {
				if p.MatchString(entry) {
					entries = append(entries, entry)
					break
				}
			}
			if len(entries) == maxExperienceLines {
				return entries
			}
		}
	}
	return entries
}
