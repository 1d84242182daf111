package parsing

import (
	"regexp"

	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	degreeRegex = regexp.MustCompile(`(?i)\b(?:ph\.?d|d\.?phil|doctorate|doctor of|master(?:'s)?|bachelor(?:'s)?|associate(?:'s)? degree|mba|m\.?sc|b\.?sc|m\.?eng|b\.?eng|b\.a|m\.a|b\.s|m\.s|ba|bs|ma|ms|mpharm|pharm\.?d|b\.?pharm|m\.?pharm|llb|llm|btech|mtech|b\.?tech|m\.?tech|diploma|certificate|pgdip|pgcert|gcse|a[- ]levels?|hnd|hnc)\b`)
	institutionRegex = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|conservatoire|universit[éa]t?)\b`)
)

var educationSeparators = regexp.MustCompile(`\s[—–-]\s|\||,|;|\(|\)|\sat\s|\sfrom\s`)

func extractEducation(sections *Sections) []types.EducationEntry {
	entries := []types.EducationEntry{}
	prevFormedEntry := false

	for _, raw := range sections.Matching(educationFamily...) {
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		dates, rest, hasDates := ExtractDateRange(line)
		degree, school := "", ""
		for _, segment := range educationSeparators.Split(rest, -1) {
			segment = trimSeparators(segment)
			if segment == "" {
				continue
			}
			if school == "" && institutionRegex.MatchString(segment) {
				school = segment
				continue
			}
			if degree == "" && degreeRegex.MatchString(segment) {
				degree = segment
			}
		}

		n := len(entries)
		if degree == "" && school == "" {
			if hasDates && n > 0 && entries[n-1].Start == "" && entries[n-1].End == "" && wordCount(rest) <= 4 {
				entries[n-1].Start, entries[n-1].End = dates.Start, dates.End
			}
			prevFormedEntry = false
			continue
		}

		if prevFormedEntry && n > 0 && complementary(entries[n-1], degree, school) {
			last := &entries[n-1]
			if last.Degree == "" {
				last.Degree = degree
			}
			if last.School == "" {
				last.School = school
			}
			if hasDates && last.Start == "" && last.End == "" {
				last.Start, last.End = dates.Start, dates.End
			}
			prevFormedEntry = false
			continue
		}

		entry := types.EducationEntry{School: school, Degree: degree}
		if hasDates {
			entry.Start, entry.End = dates.Start, dates.End
		}
		entries = append(entries, entry)
		prevFormedEntry = true
	}
	return entries
}

// complementary reports whether a line carrying only a degree (or only a school)
// completes the entry formed by the line before it.
func complementary(last types.EducationEntry, degree, school string) bool {
	if last.Degree == "" && degree != "" && school == "" {
		return true
	}
	return last.School == "" && school != "" && degree == ""
}
