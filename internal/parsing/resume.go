// Package parsing turns free-form résumé and job-description text into structured profiles.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ParseResume converts plain résumé text into a CandidateProfile. hiddenLinks are
// hyperlink targets recovered by the text extractor that do not appear in the text.
// It never fails: anything it cannot recognise is left empty.
func ParseResume(text string, hiddenLinks ...string) *types.CandidateProfile {
	profile := types.NewCandidateProfile()

	lines := splitLines(text)
	nonBlank := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			nonBlank = append(nonBlank, line)
		}
	}
	joined := strings.Join(nonBlank, "\n")

	name, nameIdx := extractName(nonBlank)
	profile.Name = name
	profile.Headline = extractHeadline(nonBlank, nameIdx)
	profile.Email = extractEmail(joined)
	profile.Phone = extractPhone(joined)
	profile.Location = extractLocation(joined)
	profile.Links = extractLinks(joined, hiddenLinks)

	sections := Segment(nonBlank)
	profile.Summary = extractSummary(sections)
	profile.Skills = extractSkills(sections, joined)
	profile.Experience = extractExperience(sections)
	profile.Education = extractEducation(sections)
	profile.Projects = extractProjects(sections)
	profile.EnsureSlices()
	return profile
}

// extractSummary joins the lines of summary-family sections
func extractSummary(sections *Sections) string {
	var parts []string
	for _, label := range sections.Labels() {
		if label == HeaderSection || !labelInFamily(label, summaryFamily) {
			continue
		}
		for _, line := range sections.Lines(label) {
			parts = append(parts, stripBullet(line))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
